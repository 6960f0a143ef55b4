package query

import (
	"github.com/user/content-system/internal/config"
	"github.com/user/content-system/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const contentsTable = "contents"

var (
	releaseDate = clause.Column{Table: contentsTable, Name: "release_date"}
	contentID   = clause.Column{Table: contentsTable, Name: "id"}
	isDeleted   = clause.Column{Table: contentsTable, Name: "is_deleted"}
)

// Query is a composed listing request
type Query struct {
	Filters []Predicate
	Sort    []SortKey
}

// Compose bundles filters and sort keys
func Compose(filters []Predicate, sort []SortKey) Query {
	return Query{Filters: filters, Sort: sort}
}

// Where returns a scope applying every filter plus the soft-delete
// exclusion. Year extraction is written per dialect.
func (q Query) Where(dialect string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where(clause.Eq{Column: isDeleted, Value: false})
		for _, p := range q.Filters {
			db = applyPredicate(db, p, dialect)
		}
		return db
	}
}

// OrderBy returns a scope ordering by the sort keys in the given order and
// then by id, so pages are stable.
func (q Query) OrderBy() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, k := range q.Sort {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Table: contentsTable, Name: k.Field.Column()},
				Desc:   k.Direction == Desc,
			})
		}
		return db.Order(clause.OrderByColumn{Column: contentID})
	}
}

func applyPredicate(db *gorm.DB, p Predicate, dialect string) *gorm.DB {
	switch p := p.(type) {
	case YearEquals:
		return db.Where(clause.Expr{
			SQL:  yearOf(dialect) + " = ?",
			Vars: []interface{}{releaseDate, p.Year},
		})
	case YearBetween:
		return db.Where(clause.Expr{
			SQL:  yearOf(dialect) + " BETWEEN ? AND ?",
			Vars: []interface{}{releaseDate, p.From, p.To},
		})
	case LanguageIn:
		fresh := db.Session(&gorm.Session{NewDB: true})
		languageIDs := fresh.Model(&model.Language{}).
			Select("id").
			Where("LOWER(name) IN ?", p.Names)
		linked := fresh.Model(&model.ContentLanguage{}).
			Distinct("content_id").
			Where("language_id IN (?)", languageIDs)
		return db.Where(clause.Expr{
			SQL:  "? IN (?)",
			Vars: []interface{}{contentID, linked},
		})
	default:
		return db
	}
}

// yearOf returns the calendar-year expression with one placeholder for the column
func yearOf(dialect string) string {
	switch dialect {
	case config.DriverMySQL:
		return "YEAR(?)"
	case config.DriverSQLite:
		return "CAST(strftime('%Y', ?) AS INTEGER)"
	default:
		return "EXTRACT(YEAR FROM ?)"
	}
}
