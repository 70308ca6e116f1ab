// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storefront

import "fmt"

// FormatPrice renders minor currency units for the storefront: whole-dollar
// amounts drop the cents ("$45"), everything else keeps two places ("$45.50").
func FormatPrice(cents int64) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// FormatPriceExact always renders two decimal places ("$45.00"). Used by
// the admin catalog table where columns should line up.
func FormatPriceExact(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
