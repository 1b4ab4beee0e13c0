package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Lelo88/produtos-api-golang/internal/client"
)

// Front end de terminal sobre client.View: el estado (lista, borrador,
// feedback) vive en la vista; acá solo se parsean comandos y se renderiza.
func main() {
	apiURL := flag.String("api", "http://localhost:3000", "base URL de la API de produtos")
	flag.Parse()

	scanner := bufio.NewScanner(os.Stdin)
	confirm := func(message string) bool {
		fmt.Printf("%s [y/N]: ", message)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}

	view := client.NewView(client.NewService(*apiURL), confirm)
	defer view.Close()

	ctx := context.Background()
	view.Load(ctx)
	render(view)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		command, argument := splitCommand(scanner.Text())
		switch command {
		case "":
			continue
		case "list":
			view.Load(ctx)
		case "new":
			view.New()
		case "edit":
			id, err := strconv.ParseInt(argument, 10, 64)
			if err != nil {
				fmt.Println("usage: edit <id>")
				continue
			}
			view.Edit(id)
		case "nome", "preco", "descricao":
			setDraftField(view, command, argument)
		case "save":
			view.Save(ctx)
		case "delete":
			id, err := strconv.ParseInt(argument, 10, 64)
			if err != nil {
				fmt.Println("usage: delete <id>")
				continue
			}
			view.Delete(ctx, id)
		case "help":
			printHelp()
			continue
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q (try help)\n", command)
			continue
		}

		render(view)
	}
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	command, argument, _ := strings.Cut(line, " ")
	return strings.ToLower(command), strings.TrimSpace(argument)
}

func setDraftField(view *client.View, field, value string) {
	draft := view.Draft()
	switch field {
	case "nome":
		draft.Nome = value
	case "preco":
		draft.Preco = value
	case "descricao":
		draft.Descricao = value
	}
	view.SetDraft(draft.Nome, draft.Preco, draft.Descricao)
}

func render(view *client.View) {
	if feedback := view.Feedback(); feedback.Message != "" {
		if feedback.IsError {
			fmt.Printf("[error] %s\n", feedback.Message)
		} else {
			fmt.Printf("[ok] %s\n", feedback.Message)
		}
	}

	draft := view.Draft()
	mode := "create"
	if view.Editing() {
		mode = fmt.Sprintf("edit #%d", draft.ID)
	}
	fmt.Printf("draft (%s): nome=%q preco=%q descricao=%q\n", mode, draft.Nome, draft.Preco, draft.Descricao)

	produtos := view.Produtos()
	if len(produtos) == 0 {
		fmt.Println("no products")
		return
	}
	for _, produto := range produtos {
		descricao := ""
		if produto.Descricao != nil {
			descricao = *produto.Descricao
		}
		fmt.Printf("%4d  %-30s %10.2f  %s\n", produto.ID, produto.Nome, produto.Preco, descricao)
	}
}

func printHelp() {
	fmt.Println(`commands:
  list                 reload products from the API
  new                  start a blank draft (create mode)
  edit <id>            load a product into the draft (edit mode)
  nome <text>          set the draft name
  preco <text>         set the draft price (sent as typed)
  descricao <text>     set the draft description
  save                 create or update from the draft
  delete <id>          delete after confirmation
  quit                 exit`)
}
