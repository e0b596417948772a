package storefront

import (
	"context"
	"strings"
	"sync"

	"github.com/SaulT-G/skateshop/internal/client"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/platform"
	"github.com/SaulT-G/skateshop/internal/ui"
)

// fakeGateway counts every outbound call so tests can assert which
// operations cost zero network round trips.
type fakeGateway struct {
	mu sync.Mutex

	calls map[string]int

	loginIdentity *domain.Identity
	loginSession  *platform.Session
	loginErr      error
	registerErr   error

	products    []domain.Product
	productsErr error

	cartLines []domain.CartLine
	cartErr   error

	addErr    error
	updateErr error
	removeErr error
	clearErr  error

	// upserts records (userID, productID, quantity) triples.
	upserts [][3]any
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: map[string]int{}}
}

func (g *fakeGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) totalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, n := range g.calls {
		total += n
	}
	return total
}

func (g *fakeGateway) record(op string) {
	g.mu.Lock()
	g.calls[op]++
	g.mu.Unlock()
}

func (g *fakeGateway) Login(context.Context, string, string) (*domain.Identity, *platform.Session, error) {
	g.record("login")
	if g.loginErr != nil {
		return nil, nil, g.loginErr
	}
	return g.loginIdentity, g.loginSession, nil
}

func (g *fakeGateway) Register(context.Context, client.RegisterForm) error {
	g.record("register")
	return g.registerErr
}

func (g *fakeGateway) Products(_ context.Context, search string) ([]domain.Product, error) {
	g.record("products")
	if g.productsErr != nil {
		return nil, g.productsErr
	}
	if search == "" {
		return g.products, nil
	}
	var out []domain.Product
	for _, p := range g.products {
		if containsFold(p.Title, search) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (g *fakeGateway) CreateProduct(context.Context, client.ProductForm) (domain.Product, error) {
	g.record("createProduct")
	return domain.Product{ID: 1}, nil
}

func (g *fakeGateway) UpdateProduct(_ context.Context, id int64, _ client.ProductForm) (domain.Product, error) {
	g.record("updateProduct")
	return domain.Product{ID: id}, nil
}

func (g *fakeGateway) DeleteProduct(context.Context, int64) error {
	g.record("deleteProduct")
	return nil
}

func (g *fakeGateway) Cart(context.Context, string) ([]domain.CartLine, error) {
	g.record("cart")
	if g.cartErr != nil {
		return nil, g.cartErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.CartLine, len(g.cartLines))
	copy(out, g.cartLines)
	return out, nil
}

func (g *fakeGateway) AddCartLine(_ context.Context, userID string, productID int64, quantity int) error {
	g.record("addCartLine")
	if g.addErr != nil {
		return g.addErr
	}
	g.mu.Lock()
	g.upserts = append(g.upserts, [3]any{userID, productID, quantity})
	// Upsert semantics: increment the existing (user, product) line.
	for i := range g.cartLines {
		if g.cartLines[i].ProductID == productID {
			g.cartLines[i].Quantity += quantity
			g.mu.Unlock()
			return nil
		}
	}
	g.cartLines = append(g.cartLines, domain.CartLine{
		ID: int64(len(g.cartLines) + 1), ProductID: productID, Quantity: quantity,
	})
	g.mu.Unlock()
	return nil
}

func (g *fakeGateway) UpdateCartLine(_ context.Context, lineID int64, quantity int) error {
	g.record("updateCartLine")
	if g.updateErr != nil {
		return g.updateErr
	}
	g.mu.Lock()
	for i := range g.cartLines {
		if g.cartLines[i].ID == lineID {
			g.cartLines[i].Quantity = quantity
		}
	}
	g.mu.Unlock()
	return nil
}

func (g *fakeGateway) RemoveCartLine(_ context.Context, lineID int64) error {
	g.record("removeCartLine")
	if g.removeErr != nil {
		return g.removeErr
	}
	g.mu.Lock()
	for i, line := range g.cartLines {
		if line.ID == lineID {
			g.cartLines = append(g.cartLines[:i], g.cartLines[i+1:]...)
			break
		}
	}
	g.mu.Unlock()
	return nil
}

func (g *fakeGateway) ClearCart(context.Context, string) error {
	g.record("clearCart")
	if g.clearErr != nil {
		return g.clearErr
	}
	g.mu.Lock()
	g.cartLines = nil
	g.mu.Unlock()
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

type fakeSDK struct {
	mu        sync.Mutex
	session   *platform.Session
	profile   *domain.Identity
	signOuts  int
	signOutEr error
}

func (s *fakeSDK) SetSession(session *platform.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}

func (s *fakeSDK) SignOut(context.Context) error {
	s.mu.Lock()
	s.signOuts++
	s.mu.Unlock()
	return s.signOutEr
}

func (s *fakeSDK) CurrentProfile(context.Context) (*domain.Identity, error) {
	if s.profile == nil {
		return nil, ErrNoLiveSession
	}
	return s.profile, nil
}

type fakeStore struct {
	mu       sync.Mutex
	identity *domain.Identity
	saves    int
	clears   int
}

func (s *fakeStore) Save(identity *domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.saves++
	return nil
}

func (s *fakeStore) Load() (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil, ErrNoLiveSession
	}
	return s.identity, nil
}

func (s *fakeStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.clears++
	return nil
}

type stubNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *stubNotifier) Notify(message string, _ ui.Severity) {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
}

func (n *stubNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

func (n *stubNotifier) countNotices() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type stubConfirmer struct {
	mu      sync.Mutex
	answer  bool
	prompts int
}

func (c *stubConfirmer) Confirm(ui.Options) bool {
	c.mu.Lock()
	c.prompts++
	c.mu.Unlock()
	return c.answer
}

type fakePresenter struct {
	mu            sync.Mutex
	visible       domain.View
	shown         []domain.View
	products      []domain.Product
	noResults     bool
	cartLines     []domain.CartLine
	adminProducts []domain.Product
	renders       map[string]int
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{renders: map[string]int{}}
}

func (p *fakePresenter) ShowView(view domain.View) {
	p.mu.Lock()
	p.visible = view
	p.shown = append(p.shown, view)
	p.mu.Unlock()
}

func (p *fakePresenter) RenderProducts(products []domain.Product, noResults bool) {
	p.mu.Lock()
	p.products = products
	p.noResults = noResults
	p.renders["products"]++
	p.mu.Unlock()
}

func (p *fakePresenter) RenderCart(lines []domain.CartLine, _ int) {
	p.mu.Lock()
	p.cartLines = lines
	p.renders["cart"]++
	p.mu.Unlock()
}

func (p *fakePresenter) RenderAdminProducts(products []domain.Product) {
	p.mu.Lock()
	p.adminProducts = products
	p.renders["admin"]++
	p.mu.Unlock()
}

func (p *fakePresenter) RenderNavbar(*domain.Identity, int) {
	p.mu.Lock()
	p.renders["navbar"]++
	p.mu.Unlock()
}

func (p *fakePresenter) visibleView() domain.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

func (p *fakePresenter) renderCount(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renders[kind]
}

var (
	buyerIdentity = &domain.Identity{
		ID: "u-1", Email: "ana@example.com", FullName: "Ana Torres",
		Username: "ana", Role: domain.RoleBuyer,
	}
	adminIdentity = &domain.Identity{
		ID: "u-2", Email: "luis@example.com", FullName: "Luis Gómez",
		Username: "luis", Role: domain.RoleAdmin,
	}
)

type testApp struct {
	app       *App
	gateway   *fakeGateway
	sdk       *fakeSDK
	store     *fakeStore
	notifier  *stubNotifier
	confirmer *stubConfirmer
	presenter *fakePresenter
}

func newTestApp() *testApp {
	t := &testApp{
		gateway:   newFakeGateway(),
		sdk:       &fakeSDK{},
		store:     &fakeStore{},
		notifier:  &stubNotifier{},
		confirmer: &stubConfirmer{},
		presenter: newFakePresenter(),
	}
	t.app = NewApp(Deps{
		API:       t.gateway,
		SDK:       t.sdk,
		Store:     t.store,
		Presenter: t.presenter,
		Notifier:  t.notifier,
		Confirmer: t.confirmer,
	})
	return t
}

func (t *testApp) loginAs(identity *domain.Identity) {
	t.app.Session.setIdentity(identity)
}
