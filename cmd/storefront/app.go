package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/example/laundry-storefront/internal/cart"
	"github.com/example/laundry-storefront/internal/domain"
	"github.com/example/laundry-storefront/internal/usecase"
)

const usage = `usage: storefront <command> [arguments]

commands:
  catalog                          show the price list
  add <category> <item>            add one unit of an item at its current price
  remove <category> <item>         remove a line from the cart
  set <category> <item> <qty>      set a line's quantity (0 removes it)
  cart                             show the cart and its total
  clear                            empty the cart
  checkout [flags]                 place the order (see checkout -h)
  orders                           list my past orders
`

var (
	errUsage = errors.New("usage")
	// errNoCommand: справка уже выведена, повторять нечего
	errNoCommand = fmt.Errorf("%w: no command given", errUsage)
)

// report печатает ошибку команды и возвращает код выхода.
func report(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoCommand):
	case errors.Is(err, errUsage):
		fmt.Fprintf(w, "error: %v (run storefront without arguments for help)\n", err)
	default:
		fmt.Fprintln(w, "error:", err)
	}
	return 1
}

type app struct {
	cart      *cart.Store
	catalog   domain.CatalogSource
	checkout  *usecase.Checkout
	myOrders  *usecase.MyOrders
	formatter domain.Formatter
	out       io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errNoCommand
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "catalog":
		return a.showCatalog(ctx)
	case "add":
		if len(rest) != 2 {
			return fmt.Errorf("%w: add <category> <item>", errUsage)
		}
		it, err := usecase.AddFromCatalog{Source: a.catalog, Cart: a.cart}.Execute(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "added %s (%s), %d item(s) in cart\n", it.Name, a.formatter.Format(it.Price), a.cart.ItemCount())
		return nil
	case "remove":
		if len(rest) != 2 {
			return fmt.Errorf("%w: remove <category> <item>", errUsage)
		}
		a.cart.RemoveItem(ctx, rest[0], rest[1])
		return a.showCart()
	case "set":
		if len(rest) != 3 {
			return fmt.Errorf("%w: set <category> <item> <qty>", errUsage)
		}
		q, err := strconv.Atoi(rest[2])
		if err != nil {
			return fmt.Errorf("%w: quantity must be a whole number", errUsage)
		}
		a.cart.SetQuantity(ctx, rest[0], rest[1], q)
		return a.showCart()
	case "cart":
		return a.showCart()
	case "clear":
		a.cart.Clear(ctx)
		fmt.Fprintln(a.out, "cart cleared")
		return nil
	case "checkout":
		return a.runCheckout(ctx, rest)
	case "orders":
		return a.showOrders(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) showCatalog(ctx context.Context) error {
	catalog, err := usecase.BrowseCatalog{Source: a.catalog}.Execute(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, cat := range catalog {
		fmt.Fprintf(tw, "%s\n", cat.Name)
		for _, it := range cat.Items {
			fmt.Fprintf(tw, "  %s\t%s\n", it.Name, a.formatter.Format(it.Price))
		}
	}
	return tw.Flush()
}

func (a *app) showCart() error {
	snap := a.cart.Snapshot()
	if len(snap) == 0 {
		fmt.Fprintln(a.out, "cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, li := range snap.Items() {
		fmt.Fprintf(tw, "%s / %s\t%d x %s\t%s\n",
			li.Category, li.Item, li.Quantity, a.formatter.Format(li.UnitPrice), a.formatter.Format(domain.LineTotal(li)))
	}
	fmt.Fprintf(tw, "total (%d item(s))\t\t%s\n", domain.ItemCount(snap), a.formatter.Format(domain.CartTotal(snap)))
	return tw.Flush()
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var form domain.CheckoutForm
	fs.StringVar(&form.Name, "name", "", "full name (required)")
	fs.StringVar(&form.Phone, "phone", "", "phone number (required)")
	fs.StringVar(&form.PickupAddress, "pickup-address", "", "pickup address (required)")
	fs.StringVar(&form.DeliveryAddress, "delivery-address", "", "delivery address, if different from pickup")
	fs.StringVar(&form.PickupDate, "pickup-date", "", "pickup date (required)")
	fs.StringVar(&form.PickupTime, "pickup-time", "", "pickup time (required)")
	fs.StringVar(&form.Notes, "notes", "", "notes for the driver")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	form.SameAsPickup = form.DeliveryAddress == ""

	conf, err := a.checkout.Submit(ctx, form)
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.out, "  %s: %s\n", f, fe[f])
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("%w; your cart was kept, try again", err)
	}
	fmt.Fprintf(a.out, "order placed: %s\n", conf.Reference)
	fmt.Fprintf(a.out, "total: %s, delivery to %s\n", a.formatter.Format(conf.Order.TotalPrice()), conf.Order.DeliveryAddress())
	return nil
}

func (a *app) showOrders(ctx context.Context) error {
	orders, err := a.myOrders.Execute(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "no orders yet")
		return nil
	}
	for i, o := range orders {
		fmt.Fprintf(a.out, "Order #%d  %s  deliver to %s  (%s)\n",
			i+1, a.formatter.Format(o.Order.TotalPrice()), o.Order.DeliveryAddress(), o.Reference)
		for _, it := range o.Order.Items() {
			fmt.Fprintf(a.out, "  %d x %s / %s @ %s\n", it.Quantity, it.Category, it.Item, a.formatter.Format(it.Price))
		}
	}
	return nil
}
