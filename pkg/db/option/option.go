// Package option provides composable query modifiers for the generic store.
package option

import "gorm.io/gorm"

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

func WithOffset(offset int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return db
		}
		return db.Offset(offset)
	})
}

func WithOrder(order string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if order == "" {
			return db
		}
		return db.Order(order)
	})
}
