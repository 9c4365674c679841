// file: internals/features/property/landlords/service/reconcile.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/helpers/apperr"
)

// ReconcileResult counts rows whose cached landlord id was rewritten.
type ReconcileResult struct {
	Tenants  int64 `json:"tenants"`
	Bills    int64 `json:"bills"`
	Payments int64 `json:"payments"`
}

func (r ReconcileResult) Total() int64 { return r.Tenants + r.Bills + r.Payments }

type cacheColumn struct {
	table    string
	landlord string
	unit     string
}

var cachedLandlordColumns = []cacheColumn{
	{table: "tenants", landlord: "tenant_landlord_id", unit: "tenant_rental_unit_id"},
	{table: "bills", landlord: "bill_landlord_id", unit: "bill_rental_unit_id"},
	{table: "payments", landlord: "payment_landlord_id", unit: "payment_rental_unit_id"},
}

// ownerOf is the chain owner of the row's unit as a correlated subquery.
func ownerOf(c cacheColumn) string {
	return fmt.Sprintf(`(SELECT a.apartment_owner_id
		FROM rental_units u
		JOIN apartments a ON a.apartment_id = u.rental_unit_apartment_id
		WHERE u.rental_unit_id = %s.%s)`, c.table, c.unit)
}

// ReconcileLandlordIDs rewrites cached landlord ids from the unit ->
// apartment -> owner chain. With landlordID set only rows whose chain ends at
// that landlord are touched. Rows whose unit no longer resolves are left alone.
func ReconcileLandlordIDs(ctx context.Context, db *gorm.DB, log *zap.Logger, landlordID *uuid.UUID) (*ReconcileResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	out := &ReconcileResult{}
	counts := []*int64{&out.Tenants, &out.Bills, &out.Payments}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, c := range cachedLandlordColumns {
			owner := ownerOf(c)
			sql := fmt.Sprintf(`UPDATE %s SET %s = %s
				WHERE %s IS NOT NULL
				  AND %s IS NOT NULL
				  AND %s <> %s`,
				c.table, c.landlord, owner,
				c.unit,
				owner,
				c.landlord, owner)
			args := []any{}
			if landlordID != nil {
				sql += fmt.Sprintf(" AND %s = ?", owner)
				args = append(args, *landlordID)
			}
			res := tx.Exec(sql, args...)
			if res.Error != nil {
				return apperr.Internal(res.Error, "reconcile %s", c.table)
			}
			*counts[i] = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("landlord caches reconciled",
		zap.Int64("tenants", out.Tenants),
		zap.Int64("bills", out.Bills),
		zap.Int64("payments", out.Payments))
	return out, nil
}
