package main

import (
	"context"
	"fmt"
	"io"
	"os"

	config "github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/internal/repository/document"
	s3Repo "github.com/DRSN-tech/go-catalog/internal/repository/minio"
	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/clients"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/urfave/cli/v3"
)

const defaultCatalogPath = "data/products.json"

type cliApp struct {
	out io.Writer
	log logger.Logger
}

func newCommand(out io.Writer, log logger.Logger) *cli.Command {
	a := &cliApp{out: out, log: log}

	return &cli.Command{
		Name:  "catalogctl",
		Usage: "просмотр каталога, расчёт цен и заказов по файлу каталога",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Value:   defaultCatalogPath,
				Usage:   "путь к JSON- или YAML-файлу каталога",
				Sources: cli.EnvVars("CATALOG_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "вывести категории и продукты",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "только эта категория"},
				},
				Action: a.show,
			},
			{
				Name:   "middle-price",
				Usage:  "средняя цена продукта в категории с учётом остатков",
				Flags:  []cli.Flag{categoryFlag()},
				Action: a.middlePrice,
			},
			{
				Name:  "order",
				Usage: "рассчитать заказ",
				Flags: []cli.Flag{
					categoryFlag(),
					&cli.StringFlag{Name: "product", Aliases: []string{"p"}, Required: true},
					&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Value: 1},
				},
				Action: a.order,
			},
			{
				Name:  "combine",
				Usage: "суммарная стоимость остатков двух продуктов одного вида",
				Flags: []cli.Flag{
					categoryFlag(),
					&cli.StringFlag{Name: "first", Required: true},
					&cli.StringFlag{Name: "second", Required: true},
				},
				Action: a.combine,
			},
			{
				Name:   "stats",
				Usage:  "счётчики категорий и продуктов",
				Action: a.stats,
			},
			{
				Name:  "convert",
				Usage: "перезаписать каталог в другом формате (по расширению --out)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true},
				},
				Action: a.convert,
			},
			{
				Name:  "push",
				Usage: "загрузить каталог в MinIO (настройки MINIO_* из окружения)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "ключ объекта", Sources: cli.EnvVars("CATALOG_OBJECT_KEY")},
				},
				Action: a.push,
			},
		},
	}
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "название категории", Required: true}
}

func (a *cliApp) loadCatalog(ctx context.Context, cmd *cli.Command) (*usecase.CatalogUseCase, error) {
	uc := usecase.NewCatalogUC(document.NewFileRepo(cmd.String("catalog"), a.log), nil, nil, nil, a.log)
	if err := uc.Load(ctx); err != nil {
		return nil, err
	}

	return uc, nil
}

func (a *cliApp) loadDocs(ctx context.Context, cmd *cli.Command) ([]document.CategoryDoc, error) {
	categories, err := document.NewFileRepo(cmd.String("catalog"), a.log).Load(ctx, domain.NewRegistry(a.log))
	if err != nil {
		return nil, err
	}

	return document.FromCategories(categories), nil
}

func (a *cliApp) show(ctx context.Context, cmd *cli.Command) error {
	uc, err := a.loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	categories, err := uc.ListCategories(ctx)
	if err != nil {
		return err
	}

	only := cmd.String("category")
	found := false
	for _, c := range categories {
		if only != "" && c.Name != only {
			continue
		}
		found = true

		products, err := uc.ListProducts(ctx, c.Name)
		if err != nil {
			return err
		}

		fmt.Fprintln(a.out, c.Summary)
		for _, p := range products {
			fmt.Fprintf(a.out, "  - %s\n", p.Rendered)
		}
	}

	if !found && only != "" {
		return e.Wrap(only, e.ErrCategoryNotFound)
	}

	return nil
}

func (a *cliApp) middlePrice(ctx context.Context, cmd *cli.Command) error {
	uc, err := a.loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	info, err := uc.GetCategory(ctx, cmd.String("category"))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%.2f\n", info.MiddlePrice)
	return nil
}

func (a *cliApp) order(ctx context.Context, cmd *cli.Command) error {
	uc, err := a.loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	order, err := uc.PlaceOrder(ctx, &usecase.PlaceOrderReq{
		CategoryName: cmd.String("category"),
		ProductName:  cmd.String("product"),
		Quantity:     int(cmd.Int("quantity")),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, order.Summary)
	return nil
}

func (a *cliApp) combine(ctx context.Context, cmd *cli.Command) error {
	uc, err := a.loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	value, err := uc.CombineValue(ctx, &usecase.CombineValueReq{
		CategoryName: cmd.String("category"),
		First:        cmd.String("first"),
		Second:       cmd.String("second"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%.2f\n", value)
	return nil
}

func (a *cliApp) stats(ctx context.Context, cmd *cli.Command) error {
	uc, err := a.loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "категорий: %d, продуктов: %d\n", stats.CategoryCount, stats.TotalProductCount)
	return nil
}

func (a *cliApp) convert(ctx context.Context, cmd *cli.Command) error {
	out := cmd.String("out")
	format, err := document.FormatFromPath(out)
	if err != nil {
		return err
	}

	docs, err := a.loadDocs(ctx, cmd)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := document.Encode(f, format, docs); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	a.log.Infof("Catalog written to %s (%s)", out, format)
	return nil
}

func (a *cliApp) push(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(a.log)
	if err != nil {
		return err
	}

	key := cmd.String("key")
	if key == "" {
		key = cfg.Catalog.ObjectKey
	}

	docs, err := a.loadDocs(ctx, cmd)
	if err != nil {
		return err
	}

	mc, err := clients.ConnectCatalogStorage(ctx, cfg.Minio, clients.MinIOStartupPolicy, a.log)
	if err != nil {
		return err
	}

	location, err := s3Repo.NewCatalogRepo(mc, cfg.Minio, key, a.log).Upload(ctx, docs)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, location)
	return nil
}
