package valueobject

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CallOrigin says where a billing platform call came from.
type CallOrigin string

const (
	CallOriginInternal CallOrigin = "INTERNAL"
	CallOriginExternal CallOrigin = "EXTERNAL"
	CallOriginTest     CallOrigin = "TEST"
)

// UserType says who initiated a billing platform call.
type UserType string

const (
	UserTypeSystem    UserType = "SYSTEM"
	UserTypeAdmin     UserType = "ADMIN"
	UserTypeCustomer  UserType = "CUSTOMER"
	UserTypeMigration UserType = "MIGRATION"
	UserTypeTest      UserType = "TEST"
)

// CallContext identifies the tenant and user behind a call and carries the
// audit information written with every row.
type CallContext struct {
	TenantID    uuid.UUID
	UserToken   uuid.UUID
	UserName    string
	CallOrigin  CallOrigin
	UserType    UserType
	ReasonCode  string
	Comments    string
	CreatedDate time.Time
	UpdatedDate time.Time
}

// NewCallContext builds a context for tenantID stamped with now.
func NewCallContext(tenantID uuid.UUID, userName string, now time.Time) (CallContext, error) {
	if tenantID == uuid.Nil {
		return CallContext{}, errors.New("tenant ID is required")
	}
	now = now.UTC()
	return CallContext{
		TenantID:    tenantID,
		UserToken:   uuid.New(),
		UserName:    userName,
		CallOrigin:  CallOriginExternal,
		UserType:    UserTypeSystem,
		CreatedDate: now,
		UpdatedDate: now,
	}, nil
}
