package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/ui"
)

// terminal implements the presentation interfaces over stdin/stdout: it
// is the Presenter behind the view registry, the Sink behind the
// notifier and the Prompt behind the confirmer.
type terminal struct {
	in *bufio.Reader
}

func newTerminal() *terminal {
	return &terminal{in: bufio.NewReader(os.Stdin)}
}

func (t *terminal) readLine(prompt string) string {
	fmt.Print(prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (t *terminal) ShowView(view domain.View) {
	fmt.Printf("\n══ %s ══\n", view)
}

func (t *terminal) RenderProducts(products []domain.Product, noResults bool) {
	if noResults {
		fmt.Println("No se encontraron productos.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTÍTULO\tPRECIO\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\n", p.ID, p.Title, p.Price, p.Stock)
	}
	w.Flush()
}

func (t *terminal) RenderCart(lines []domain.CartLine, badge int) {
	if len(lines) == 0 {
		fmt.Println("Tu carrito está vacío.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LÍNEA\tTÍTULO\tPRECIO\tCANT\tTOTAL")
	var total float64
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%.2f\n", l.ID, l.Title, l.Price, l.Quantity, l.Total())
		total += l.Total()
	}
	fmt.Fprintf(w, "\t\t\t\t%.2f\n", total)
	w.Flush()
	fmt.Printf("(%d artículos)\n", badge)
}

func (t *terminal) RenderAdminProducts(products []domain.Product) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTÍTULO\tDETALLE\tPRECIO\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\n", p.ID, p.Title, p.Detail, p.Price, p.Stock)
	}
	w.Flush()
}

func (t *terminal) RenderNavbar(identity *domain.Identity, badge int) {
	switch {
	case identity == nil:
		fmt.Println("── sin sesión ──")
	case identity.IsAdmin():
		fmt.Printf("── %s (admin) ──\n", identity.FullName)
	default:
		fmt.Printf("── %s · carrito: %d ──\n", identity.FullName, badge)
	}
}

// Sink: notices print once on Show; a terminal cannot retract text, so
// Hide and Clear are silent.
func (t *terminal) Show(n ui.Notice) {
	fmt.Printf("[%s] %s\n", n.Severity, n.Message)
}

func (t *terminal) Hide(ui.Notice) {}
func (t *terminal) Clear()         {}

// Prompt: printing happens here, the answer is read in a goroutine so
// Present never blocks. The REPL is parked inside Confirm while this
// runs, so the shared reader is free.
func (t *terminal) Present(opts ui.Options, pending *ui.Pending) {
	fmt.Printf("%s %s\n%s\n", opts.Icon, opts.Title, opts.Message)
	go func() {
		answer := t.readLine(fmt.Sprintf("%s / %s [s/n]: ", opts.ConfirmText, opts.CancelText))
		pending.Answer(strings.HasPrefix(strings.ToLower(answer), "s"))
	}()
}
