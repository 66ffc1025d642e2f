package postgres

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Expressions translates every predicate condition into a GORM clause.
func Expressions[E any](p search.Predicate[E]) []clause.Expression {
	conds := p.Conditions()
	exprs := make([]clause.Expression, 0, len(conds))
	for _, cond := range conds {
		column := clause.Column{Name: cond.Column()}
		switch cond.Operator() {
		case search.OpContains:
			pattern := "%" + likeEscaper.Replace(cond.Value().(string)) + "%"
			exprs = append(exprs, clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []interface{}{column, pattern}})
		case search.OpEqualFold:
			exprs = append(exprs, clause.Expr{SQL: "LOWER(?) = ?", Vars: []interface{}{column, cond.Value()}})
		case search.OpEquals:
			exprs = append(exprs, clause.Eq{Column: column, Value: cond.Value()})
		}
	}
	return exprs
}

// ApplyPredicate narrows db to rows matching p. An empty predicate leaves db
// untouched so every row matches.
func ApplyPredicate[E any](db *gorm.DB, p search.Predicate[E]) *gorm.DB {
	exprs := Expressions(p)
	if len(exprs) == 0 {
		return db
	}
	return db.Clauses(clause.Where{Exprs: exprs})
}

// ApplyPage orders db by the whitelisted sort properties, then by id, and
// selects the requested window.
func ApplyPage[E any](db *gorm.DB, req search.PageRequest, sortable search.Sortable[E]) *gorm.DB {
	for _, order := range req.Sort {
		field, ok := sortable[order.Property]
		if !ok {
			continue
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: field.Column}, Desc: order.Descending()})
	}
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	return db.Offset(req.Offset()).Limit(req.Size)
}
