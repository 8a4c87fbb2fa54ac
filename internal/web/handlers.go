package web

import (
	"fmt"
	"html"
	"net/http"
	"slices"

	slogctx "github.com/veqryn/slog-context"

	"github.com/awesomefonts/foundry/internal/catalog"
	"github.com/awesomefonts/foundry/internal/hypertext"
)

// Handlers renders the storefront pages. Every handler runs inside the
// lifecycle middleware and emits a page body; the shell is applied during
// finalization.
type Handlers struct {
	lifecycle *Lifecycle
	catalog   catalog.Store
}

func NewHandlers(lifecycle *Lifecycle, catalogStore catalog.Store) *Handlers {
	return &Handlers{
		lifecycle: lifecycle,
		catalog:   catalogStore,
	}
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	st, err := StateFromContext(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var b hypertext.Builder
	b.Open("div", hypertext.Class("content"), hypertext.Style("width: 1000px;"))
	b.Open("h1")
	if st.User != nil {
		b.Raw(fmt.Sprintf("Hello %s,<br />Welcome to Awesome Fonts",
			html.EscapeString(st.User.Profile.Account.Name)))
	} else {
		b.Text("Welcome to Awesome Fonts")
	}
	b.Close("h1")
	b.Close("div") // .content

	_, _ = w.Write([]byte(b.String()))
}

func (h *Handlers) Fonts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	families, err := h.catalog.List(ctx)
	if err != nil {
		slogctx.Error(ctx, "Failed to list font families", "error", err)
		families = nil
	}

	var b hypertext.Builder
	b.Open("div", hypertext.Class("content"))
	b.Open("h1")
	b.Text("Fonts")
	b.Close("h1")
	for _, family := range families {
		b.Open("div", hypertext.Class("area scheme1"), hypertext.ID("family-"+family.ID))
		b.Open("div", hypertext.Class("areabody"))
		b.Open("p")
		b.Text(fmt.Sprintf("%s by %s — $%d.%02d", family.Name, family.Designer,
			family.PriceCents/100, family.PriceCents%100))
		b.Close("p")
		b.Open("a", hypertext.Class("button"),
			hypertext.OnClick(fmt.Sprintf("addToCart('%s');", family.ID)))
		b.Text("Add to Cart")
		b.Close("a")
		b.Close("div")
		b.Close("div")
	}
	b.Close("div")

	_, _ = w.Write([]byte(b.String()))
}

func (h *Handlers) Cart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := StateFromContext(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var b hypertext.Builder
	b.Open("div", hypertext.Class("content"))
	b.Open("h1")
	b.Text("Cart")
	b.Close("h1")

	items := st.Session.Cart()
	if len(items) == 0 {
		b.Open("p")
		b.Text("Your cart is empty.")
		b.Close("p")
	}
	for _, familyID := range items {
		family, err := h.catalog.Get(ctx, familyID)
		if err != nil {
			slogctx.Info(ctx, "Skipping unknown cart item", "family_id", familyID, "error", err)
			continue
		}
		b.Open("p")
		b.Text(fmt.Sprintf("%s — $%d.%02d", family.Name, family.PriceCents/100, family.PriceCents%100))
		b.Close("p")
	}
	b.Close("div")

	_, _ = w.Write([]byte(b.String()))
}

func (h *Handlers) CartAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := StateFromContext(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	familyID := r.FormValue("family")
	if _, err := h.catalog.Get(ctx, familyID); err != nil {
		var b hypertext.Builder
		b.Script("warning('Unknown font family');")
		_, _ = w.Write([]byte(b.String()))
		return
	}

	items := st.Session.Cart()
	if !slices.Contains(items, familyID) {
		st.Session.SetCart(append(items, familyID))
		h.lifecycle.enqueueSessionSave(st)
	}

	var b hypertext.Builder
	b.Script("location.reload();")
	_, _ = w.Write([]byte(b.String()))
}

func (h *Handlers) Account(w http.ResponseWriter, r *http.Request) {
	st, err := StateFromContext(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var b hypertext.Builder
	b.Open("div", hypertext.Class("content"))
	b.Open("h1")
	b.Text("Account")
	b.Close("h1")
	if st.User == nil {
		b.Open("p")
		b.Text("Please sign in to see your account.")
		b.Close("p")
	} else {
		b.Open("p")
		b.Text(st.User.Profile.Account.Name)
		b.Close("p")
		b.Open("p")
		b.Text(st.User.Profile.Account.Email)
		b.Close("p")
	}
	b.Close("div")

	_, _ = w.Write([]byte(b.String()))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := StateFromContext(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.lifecycle.Logout(ctx, st, w)

	var b hypertext.Builder
	b.Script("location.reload();")
	_, _ = w.Write([]byte(b.String()))
}
