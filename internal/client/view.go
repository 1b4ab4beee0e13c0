package client

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// feedbackClearDelay es cuánto vive un mensaje transitorio en pantalla.
const feedbackClearDelay = 5 * time.Second

// ServiceAPI es lo que la vista necesita del data service.
type ServiceAPI interface {
	List(ctx context.Context) ([]Produto, error)
	Create(ctx context.Context, form ProdutoForm) (int64, error)
	Update(ctx context.Context, id int64, form ProdutoForm) error
	Delete(ctx context.Context, id int64) error
}

// Draft es el borrador en edición. ID == 0 significa modo creación.
type Draft struct {
	ID        int64
	Nome      string
	Preco     string
	Descricao string
}

// Feedback es el mensaje transitorio que la vista muestra tras cada acción.
type Feedback struct {
	Message string
	IsError bool
}

// View mantiene el estado de la página: la lista actual, el borrador y el
// feedback. Cada mutación exitosa recarga la lista completa, sin updates
// incrementales, en llamadas secuenciales.
type View struct {
	service ServiceAPI
	confirm func(message string) bool

	mu         sync.Mutex
	produtos   []Produto
	draft      Draft
	editing    bool
	feedback   Feedback
	clearTimer *time.Timer
	clearDelay time.Duration
}

// NewView crea la vista. confirm se invoca antes de cada borrado; si
// devuelve false el borrado se cancela sin tocar la API.
func NewView(service ServiceAPI, confirm func(message string) bool) *View {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &View{
		service:    service,
		confirm:    confirm,
		clearDelay: feedbackClearDelay,
	}
}

// Load recarga la lista completa y deja feedback del resultado.
func (view *View) Load(ctx context.Context) {
	listed, err := view.service.List(ctx)

	view.mu.Lock()
	defer view.mu.Unlock()
	if err != nil {
		view.setFeedbackLocked(fmt.Sprintf("error loading products: %v", err), true)
		return
	}
	view.produtos = listed
	view.setFeedbackLocked("products loaded successfully", false)
}

// New resetea el borrador a modo creación.
func (view *View) New() {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.draft = Draft{}
	view.editing = false
	view.clearFeedbackLocked()
}

// Edit carga en el borrador el produto pedido (de la lista ya cargada).
func (view *View) Edit(id int64) bool {
	view.mu.Lock()
	defer view.mu.Unlock()

	for _, produto := range view.produtos {
		if produto.ID == id {
			descricao := ""
			if produto.Descricao != nil {
				descricao = *produto.Descricao
			}
			view.draft = Draft{
				ID:        produto.ID,
				Nome:      produto.Nome,
				Preco:     strconv.FormatFloat(produto.Preco, 'f', -1, 64),
				Descricao: descricao,
			}
			view.editing = true
			view.clearFeedbackLocked()
			return true
		}
	}

	view.setFeedbackLocked(fmt.Sprintf("product %d is not in the loaded list", id), true)
	return false
}

// SetDraft pisa los campos editables del borrador, manteniendo el modo.
func (view *View) SetDraft(nome, preco, descricao string) {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.draft.Nome = nome
	view.draft.Preco = preco
	view.draft.Descricao = descricao
}

// Save crea o actualiza según el modo, recarga la lista y resetea el
// borrador. Las llamadas son secuenciales: primero la mutación, después
// el reload.
func (view *View) Save(ctx context.Context) {
	view.mu.Lock()
	form := ProdutoForm{Nome: view.draft.Nome, Preco: view.draft.Preco}
	if view.draft.Descricao != "" {
		descricao := view.draft.Descricao
		form.Descricao = &descricao
	}
	editing := view.editing
	id := view.draft.ID
	view.mu.Unlock()

	var err error
	var message string
	if editing {
		err = view.service.Update(ctx, id, form)
		message = "product updated successfully"
	} else {
		_, err = view.service.Create(ctx, form)
		message = "product created successfully"
	}

	if err != nil {
		view.mu.Lock()
		defer view.mu.Unlock()
		view.setFeedbackLocked(fmt.Sprintf("error saving product: %v", err), true)
		return
	}

	view.reload(ctx)

	view.mu.Lock()
	defer view.mu.Unlock()
	view.draft = Draft{}
	view.editing = false
	view.setFeedbackLocked(message, false)
}

// Delete pide confirmación, borra y recarga. Devuelve false si el usuario
// canceló.
func (view *View) Delete(ctx context.Context, id int64) bool {
	if !view.confirm(fmt.Sprintf("delete product %d? this cannot be undone", id)) {
		return false
	}

	if err := view.service.Delete(ctx, id); err != nil {
		view.mu.Lock()
		defer view.mu.Unlock()
		view.setFeedbackLocked(fmt.Sprintf("error deleting product: %v", err), true)
		return false
	}

	view.reload(ctx)

	view.mu.Lock()
	defer view.mu.Unlock()
	view.setFeedbackLocked("product deleted successfully", false)
	return true
}

// Produtos devuelve la lista cargada.
func (view *View) Produtos() []Produto {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.produtos
}

// Draft devuelve el borrador actual.
func (view *View) Draft() Draft {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.draft
}

// Editing indica si el borrador apunta a un produto existente.
func (view *View) Editing() bool {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.editing
}

// Feedback devuelve el mensaje transitorio vigente.
func (view *View) Feedback() Feedback {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.feedback
}

// Close cancela el timer de limpieza pendiente, si lo hay.
func (view *View) Close() {
	view.mu.Lock()
	defer view.mu.Unlock()
	if view.clearTimer != nil {
		view.clearTimer.Stop()
		view.clearTimer = nil
	}
}

// reload trae la lista sin tocar el feedback: quien muta decide el mensaje.
func (view *View) reload(ctx context.Context) {
	listed, err := view.service.List(ctx)
	if err != nil {
		return
	}
	view.mu.Lock()
	defer view.mu.Unlock()
	view.produtos = listed
}

func (view *View) setFeedbackLocked(message string, isError bool) {
	view.feedback = Feedback{Message: message, IsError: isError}

	if view.clearTimer != nil {
		view.clearTimer.Stop()
	}
	view.clearTimer = time.AfterFunc(view.clearDelay, func() {
		view.mu.Lock()
		defer view.mu.Unlock()
		view.clearFeedbackLocked()
	})
}

func (view *View) clearFeedbackLocked() {
	view.feedback = Feedback{}
	if view.clearTimer != nil {
		view.clearTimer.Stop()
		view.clearTimer = nil
	}
}
