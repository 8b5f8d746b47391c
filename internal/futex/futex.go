// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futex

import (
	"errors"
	"math"
)

// ErrTimedOut reports that the timeout elapsed while the cell still held
// the expected value.
var ErrTimedOut = errors.New("futex: timed out")

// All is the wake count that releases every waiter on an address.
const All = math.MaxInt32
