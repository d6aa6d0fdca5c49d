package rls

import (
	"fmt"

	"gorm.io/gorm"
)

// Apply pins the caller's tenant on the transaction session so postgres
// row security policies can enforce isolation below the ORM. Other
// dialects have no session variables; the ORM-level tenant filter is the
// only guard there.
func Apply(tx *gorm.DB, tenantID int64) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		"SET LOCAL app.current_tenant_id = ?",
		fmt.Sprintf("%d", tenantID),
	).Error
}
