package domain

import "fmt"

// Entity — общий контракт элементов каталога: имя, описание и текстовое представление.
type Entity interface {
	fmt.Stringer
	Name() string
	Description() string
}

var (
	_ Entity = (*Product)(nil)
	_ Entity = (*Category)(nil)
)
