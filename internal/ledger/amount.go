/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ledger

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// reLeadingNumber matches the longest decimal literal at the start of the input,
// so "12.5 EUR" parses as 12.5 the way a lenient form field would.
var reLeadingNumber = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// ParseAmount parses user input as a decimal amount. Anything unparsable is zero,
// and so is any literal whose magnitude falls outside the float64 range.
func ParseAmount(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	literal := reLeadingNumber.FindString(trimmed)
	if literal == "" {
		zap.L().Debug("Unparsable amount, defaulting to zero", zap.String("input", raw))
		return decimal.Zero
	}

	// decimal accepts any exponent, and "1e50000000" would expand to millions of digits
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(f, 0) {
		zap.L().Debug("Amount out of range, defaulting to zero", zap.String("input", raw), zap.Error(err))
		return decimal.Zero
	}
	// underflow, including literals like "1e-50000000"
	if f == 0 {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(literal)
	if err != nil {
		zap.L().Debug("Unparsable amount, defaulting to zero", zap.String("input", raw), zap.Error(err))
		return decimal.Zero
	}
	return amount
}

// FormatAmount renders an amount with two decimals, the way the table shows it.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
