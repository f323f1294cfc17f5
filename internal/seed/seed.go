package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Title    string
	ImageURL string
	Price    string
}

// Apply inserts basic seed data for manual testing. Products are matched on
// title so repeated runs stay idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Title:    "Demo T-Shirt",
			ImageURL: "https://placehold.co/400x400?text=T-Shirt",
			Price:    "19.99",
		},
		{
			Title:    "Demo Mug",
			ImageURL: "https://placehold.co/400x400?text=Mug",
			Price:    "12.99",
		},
		{
			Title:    "Demo Sticker Pack",
			ImageURL: "https://placehold.co/400x400?text=Stickers",
			Price:    "5.50",
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Title, err)
		}
	}

	return nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (title, image_url, price)
SELECT $1, $2, $3::numeric
WHERE NOT EXISTS (SELECT 1 FROM products WHERE title = $1)
`
	_, err := pool.Exec(ctx, q, p.Title, p.ImageURL, p.Price)
	return err
}
