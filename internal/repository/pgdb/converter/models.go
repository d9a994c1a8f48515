package converter

import "time"

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
}

// ProductModel представляет запись таблицы products в PostgreSQL.
// Price читается как текст NUMERIC, Attributes хранит сырой jsonb с полями вида продукта.
type ProductModel struct {
	ID          int64     `db:"id"`
	CategoryID  int64     `db:"category_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       string    `db:"price"`
	Quantity    int       `db:"quantity"`
	Kind        string    `db:"kind"`
	Attributes  []byte    `db:"attributes"`
	CreatedAt   time.Time `db:"created_at"`
}
