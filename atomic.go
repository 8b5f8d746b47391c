// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncx

import "code.hybscloud.com/atomix"

// Cells are atomix.Int32 and atomix.Int64 values. Every operation here is
// non-blocking and totally ordered on a single cell. A nil cell is a
// caller bug and panics.

// Load32 returns the current value of cell.
func Load32(cell *atomix.Int32) int32 {
	return cell.LoadAcquire()
}

// Load64 returns the current value of cell.
func Load64(cell *atomix.Int64) int64 {
	return cell.LoadAcquire()
}

// LoadAdd32 adds delta to cell and returns the previous value.
// The sum wraps on overflow.
func LoadAdd32(cell *atomix.Int32, delta int32) int32 {
	return cell.AddAcqRel(delta) - delta
}

// LoadAdd64 adds delta to cell and returns the previous value.
// The sum wraps on overflow.
func LoadAdd64(cell *atomix.Int64, delta int64) int64 {
	return cell.AddAcqRel(delta) - delta
}

// Exchange32 stores v into cell and returns the previous value.
func Exchange32(cell *atomix.Int32, v int32) int32 {
	return cell.SwapAcqRel(v)
}

// Exchange64 stores v into cell and returns the previous value.
func Exchange64(cell *atomix.Int64, v int64) int64 {
	return cell.SwapAcqRel(v)
}

// CompareExchange32 stores v into cell if it holds expected and returns
// the value observed. The store happened iff the result equals expected.
func CompareExchange32(cell *atomix.Int32, expected, v int32) int32 {
	return cell.CompareExchangeAcqRel(expected, v)
}

// CompareExchange64 stores v into cell if it holds expected and returns
// the value observed. The store happened iff the result equals expected.
func CompareExchange64(cell *atomix.Int64, expected, v int64) int64 {
	return cell.CompareExchangeAcqRel(expected, v)
}
