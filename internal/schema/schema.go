// Package schema names the fixed columns of a customer call list and checks
// that a loaded table carries all of them.
package schema

import (
	"fmt"
	"strings"

	"callclean/internal/table"
)

const (
	FirstName      = "First_Name"
	LastName       = "Last_Name"
	PhoneNumber    = "Phone_Number"
	Address        = "Address"
	PayingCustomer = "Paying_Customer"
	DoNotContact   = "Do_Not_Contact"
	NotUseful      = "Not_Useful_Column"

	// UnknownPhone replaces a phone number with no digits left.
	UnknownPhone = "Unknown"
)

// Required lists every column the cleaning steps touch.
var Required = []string{
	FirstName, LastName, PhoneNumber, Address,
	PayingCustomer, DoNotContact, NotUseful,
}

// Canonical drops a leading byte order mark, trims a header and joins its
// words with underscores, so that "Paying Customer" and "Paying_Customer"
// name the same column.
func Canonical(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return strings.Join(strings.Fields(header), "_")
}

// Check returns a schema error naming every required column t lacks.
func Check(t *table.Table) error {
	var missing []string
	for _, c := range Required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", table.ErrColumnNotFound, strings.Join(missing, ", "))
	}
	return nil
}
