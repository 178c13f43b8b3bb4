package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	cartapp "giftshop/internal/application/cart"
	"giftshop/internal/application/checkout"
	"giftshop/internal/config"
	"giftshop/internal/domain/catalog"
	"giftshop/internal/domain/order"
	"giftshop/internal/infrastructure/http/webhook"
	"giftshop/internal/infrastructure/http/whatsapp"
	"giftshop/internal/infrastructure/persistence/localstore"
	"giftshop/pkg/logger"
)

// shop is the storefront driver: cart mutations against the on-disk
// store and checkout through the order dispatcher.
//
//	shop add -id watch_1 -title "Rolex Classic" -price 325
//	shop qty -id watch_1 -n 2
//	shop show
//	shop checkout -name "Ahmed Ali" -phone 0501234567 -address "Dubai"
//	shop history
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: shop <add|remove|qty|show|clear|checkout|history> [flags]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	store, err := localstore.New(cfg.Store.Dir, zlog)
	if err != nil {
		log.Fatalf("open store failed: %v", err)
	}

	cartSvc := cartapp.NewService(localstore.NewCartStore(store, zlog), cfg.Cart.MaxQuantity, zlog)
	history := localstore.NewHistoryStore(store, zlog)

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(cmd, args, cfg, zlog, cartSvc, history); err != nil {
		log.Fatalf("%s failed: %v", cmd, err)
	}
}

func run(
	cmd string,
	args []string,
	cfg *config.Config,
	zlog logger.Logger,
	cartSvc *cartapp.Service,
	history *localstore.HistoryStore,
) error {
	switch cmd {
	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		title := fs.String("title", "", "product title")
		price := fs.Float64("price", 0, "unit price in AED")
		qty := fs.Int("qty", 1, "quantity to add")
		category := fs.String("category", "", "product category")
		fs.Parse(args)

		p := catalog.Product{ID: *id, Title: *title, Price: *price, Category: *category}
		if err := cartSvc.AddItem(p, *qty); err != nil {
			return err
		}
		return printCart(cartSvc)

	case "remove":
		fs := flag.NewFlagSet("remove", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		fs.Parse(args)

		cartSvc.RemoveItem(*id)
		return printCart(cartSvc)

	case "qty":
		fs := flag.NewFlagSet("qty", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		n := fs.Int("n", 1, "new quantity; 0 removes the line")
		fs.Parse(args)

		cartSvc.UpdateQuantity(*id, *n)
		return printCart(cartSvc)

	case "show":
		return printCart(cartSvc)

	case "clear":
		cartSvc.Clear()
		fmt.Println("cart cleared")
		return nil

	case "checkout":
		fs := flag.NewFlagSet("checkout", flag.ExitOnError)
		name := fs.String("name", "", "customer name")
		phone := fs.String("phone", "", "UAE mobile, 05xxxxxxxx")
		address := fs.String("address", "", "delivery address")
		notes := fs.String("notes", "", "delivery notes")
		fs.Parse(args)

		return runCheckout(cfg, zlog, cartSvc, history, order.CheckoutForm{
			Name:    *name,
			Phone:   *phone,
			Address: *address,
			Notes:   *notes,
		})

	case "history":
		for _, rec := range history.All() {
			fmt.Printf("%s  %s  %.2f AED  [%s]\n",
				rec.OrderID, rec.SubmittedAt.Local().Format(time.RFC822), rec.Total, rec.Status)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runCheckout(
	cfg *config.Config,
	zlog logger.Logger,
	cartSvc *cartapp.Service,
	history *localstore.HistoryStore,
	form order.CheckoutForm,
) error {
	sinks := []checkout.Sink{checkout.NewHistorySink(history)}
	if cfg.Webhook.URL != "" {
		sinks = append(sinks, webhook.NewClient(cfg.Webhook, zlog))
	}
	// The CLI cannot launch WhatsApp itself; it prints the deep link
	// for the user to open.
	printLink := func(ctx context.Context, link string) error {
		fmt.Printf("open WhatsApp to confirm: %s\n", link)
		return nil
	}
	sinks = append(sinks, whatsapp.NewNotifier(cfg.WhatsApp, printLink, zlog))

	dispatcher := checkout.NewDispatcher(cartSvc, sinks, cfg.Webhook.Timeout, zlog)

	result, err := dispatcher.Submit(context.Background(), form)
	if err != nil {
		if result != nil {
			for _, fe := range result.FieldErrors {
				fmt.Printf("  %s: %s\n", fe.Field, fe.Message)
			}
		}
		return err
	}

	fmt.Printf("order %s placed (%.2f AED, %s)\n",
		result.Record.OrderID, result.Record.Total, result.Record.Status)
	return nil
}

func printCart(cartSvc *cartapp.Service) error {
	lines := cartSvc.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, l := range lines {
		fmt.Printf("%-16s %-24s x%-3d %8.2f AED\n", l.ID, l.Title, l.Quantity, l.Subtotal())
	}
	fmt.Printf("total: %.2f AED (%d items)\n", cartSvc.Total(), cartSvc.Count())
	return nil
}
