package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Category classifies an order and drives the dispatch policy: food delivery
// orders are prepared by the store itself and are not auto-assigned a picker
// on acceptance.
type Category string

const (
	CategoryGrocery      Category = "grocery"
	CategoryPharmacy     Category = "pharmacy"
	CategoryElectronics  Category = "electronics"
	CategoryFoodDelivery Category = "food_delivery"
)

// Validate checks that the category is one of the closed set.
func (c Category) Validate() error {
	switch c {
	case CategoryGrocery, CategoryPharmacy, CategoryElectronics, CategoryFoodDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("category",
			fmt.Errorf("%q is not a valid category", string(c)))
	}
}

// AutoAssignsPicker reports whether acceptance should trigger automatic
// picker assignment for this category.
func (c Category) AutoAssignsPicker() bool {
	return c != CategoryFoodDelivery
}

func (c Category) String() string {
	return string(c)
}
