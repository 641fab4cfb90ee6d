package vkg

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// errInsufficientPoolSpace is returned when a resource pool cannot fit an allocation
var errInsufficientPoolSpace = errors.New("insufficient storage space in resource pool")

// checkResult turns a failed vk.Result into an error annotated with op and a stack
func checkResult(res vk.Result, op string) error {
	err := vk.Error(res)
	if err == nil {
		return nil
	}
	return errors.Wrap(err, op)
}
