package usecase

import (
	"context"

	"github.com/killbill/killbill-moneris-plugin/internal/application/dto"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
)

// BuildFormDescriptor would create a hosted payment page. Moneris hosted
// pages are not offered, so it always fails without side effects.
type BuildFormDescriptor struct{}

func NewBuildFormDescriptor() *BuildFormDescriptor { return &BuildFormDescriptor{} }

func (uc *BuildFormDescriptor) Execute(_ context.Context, _ dto.FormDescriptorRequest) error {
	return model.ErrUnsupportedOperation
}

// ProcessNotification would handle an inbound gateway notification. It
// always fails without side effects.
type ProcessNotification struct{}

func NewProcessNotification() *ProcessNotification { return &ProcessNotification{} }

func (uc *ProcessNotification) Execute(_ context.Context, _ dto.NotificationRequest) error {
	return model.ErrUnsupportedOperation
}
