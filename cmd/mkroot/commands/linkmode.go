package commands

import (
	"github.com/spf13/pflag"
	"go.trai.ch/mkroot/internal/core/domain"
)

var _ pflag.Value = (*linkModeValue)(nil)

// linkModeValue is a pflag.Value parsing domain.LinkMode.
type linkModeValue domain.LinkMode

func (v *linkModeValue) String() string {
	return domain.LinkMode(*v).String()
}

func (v *linkModeValue) Set(s string) error {
	mode, err := domain.ParseLinkMode(s)
	if err != nil {
		return err
	}
	*v = linkModeValue(mode)
	return nil
}

func (v *linkModeValue) Type() string {
	return "mode"
}
