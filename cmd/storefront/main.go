package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SaulT-G/skateshop/internal/client"
	"github.com/SaulT-G/skateshop/internal/config"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/localstore"
	"github.com/SaulT-G/skateshop/internal/platform"
	"github.com/SaulT-G/skateshop/internal/storefront"
	"github.com/SaulT-G/skateshop/internal/ui"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadStorefront()

	term := newTerminal()
	api := client.New(cfg.APIURL, cfg.RequestTimeout)
	sdk := storefront.NewSDK(platform.NewClient(cfg.PlatformURL, cfg.PlatformAnonKey))
	store := localstore.New(cfg.StateDir)

	app := storefront.NewApp(storefront.Deps{
		API:            api,
		SDK:            sdk,
		Store:          store,
		Presenter:      term,
		Notifier:       ui.NewNotifier(term),
		Confirmer:      ui.NewConfirmer(term),
		SearchDebounce: cfg.SearchDebounce,
	})

	ctx := context.Background()
	app.Start(ctx)
	repl(ctx, app, term)
}

func repl(ctx context.Context, app *storefront.App, term *terminal) {
	fmt.Println(`Escribe "ayuda" para ver los comandos.`)
	for {
		line := term.readLine("> ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "salir", "exit":
			return
		case "ayuda", "help":
			printHelp()
		case "login":
			user := term.readLine("usuario o email: ")
			pass := term.readLine("contraseña: ")
			app.Login(ctx, user, pass)
		case "registro":
			app.Register(ctx, storefront.RegisterForm{
				FullName:        term.readLine("nombre completo: "),
				Username:        term.readLine("usuario: "),
				Email:           term.readLine("email: "),
				Password:        term.readLine("contraseña: "),
				ConfirmPassword: term.readLine("confirmar contraseña: "),
			})
		case "logout":
			app.Logout(ctx)
		case "productos":
			app.Views.Activate(ctx, domain.ViewProducts)
		case "buscar":
			app.SearchInput(ctx, strings.Join(args, " "))
		case "carrito":
			app.Views.Activate(ctx, domain.ViewCart)
		case "agregar":
			if id, ok := parseID(args); ok {
				app.Cart.AddLine(ctx, id)
			}
		case "cantidad":
			if len(args) == 2 {
				lineID, err1 := strconv.ParseInt(args[0], 10, 64)
				qty, err2 := strconv.Atoi(args[1])
				if err1 == nil && err2 == nil {
					app.Cart.SetLineQuantity(ctx, lineID, qty)
				}
			}
		case "quitar":
			if id, ok := parseID(args); ok {
				app.Cart.RemoveLine(ctx, id)
			}
		case "vaciar":
			app.Cart.Clear(ctx)
		case "admin":
			app.Views.Activate(ctx, domain.ViewAdmin)
		case "crear":
			app.Admin.BeginCreate()
			saveProduct(ctx, app, term)
		case "editar":
			if id, ok := parseID(args); ok {
				if p, err := app.Admin.BeginEdit(ctx, id); err == nil {
					fmt.Printf("editando #%d: %s\n", p.ID, p.Title)
					saveProduct(ctx, app, term)
				}
			}
		case "eliminar":
			if id, ok := parseID(args); ok {
				app.Admin.Delete(ctx, id)
			}
		default:
			fmt.Println("Comando desconocido. Escribe \"ayuda\".")
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		fmt.Println("Falta el identificador.")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Identificador inválido.")
		return 0, false
	}
	return id, true
}

func saveProduct(ctx context.Context, app *storefront.App, term *terminal) {
	form := client.ProductForm{
		Title:  term.readLine("título: "),
		Detail: term.readLine("detalle: "),
	}
	form.Stock, _ = strconv.Atoi(term.readLine("cantidad: "))
	form.Price, _ = strconv.ParseFloat(term.readLine("precio: "), 64)

	if path := term.readLine("imagen (ruta, vacío para omitir): "); path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("No se pudo abrir la imagen: %v\n", err)
			return
		}
		defer f.Close()
		form.Image = f
		form.ImageName = filepath.Base(path)
	}

	app.Admin.Save(ctx, form)
}

func printHelp() {
	fmt.Println(`Comandos:
  login                 iniciar sesión
  registro              crear una cuenta
  logout                cerrar sesión
  productos             ver el catálogo
  buscar <término>      filtrar productos por título
  carrito               ver el carrito
  agregar <producto>    añadir un producto al carrito
  cantidad <línea> <n>  cambiar la cantidad de una línea
  quitar <línea>        eliminar una línea del carrito
  vaciar                vaciar el carrito
  admin                 gestionar productos (admin)
  crear                 crear un producto (admin)
  editar <producto>     editar un producto (admin)
  eliminar <producto>   eliminar un producto (admin)
  salir                 terminar`)
}
