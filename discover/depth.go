// SPDX-License-Identifier: MIT

package discover

import (
	"fmt"

	"github.com/katalvlaran/ndarray/source"
)

// Depth returns the number of nested sequence levels of n.
//
// Rules, in order:
//  1. a record tuple with stopAtRecordTuple is a record leaf and is not descended;
//  2. an empty sequence contributes one level;
//  3. any other sequence contributes one level plus the depth of its FIRST
//     element only (raggedness is left to FillShape);
//  4. a typed array contributes its own dimension count;
//  5. text contributes nothing when stopAtText is set, one level otherwise;
//  6. scalars and unclassifiable values contribute nothing.
//
// Errors:
//   - ErrDepthExceeded when the result would exceed maxAllowed.
//
// Complexity: O(depth).
func Depth(n source.Node, maxAllowed int, stopAtText, stopAtRecordTuple bool) (int, error) {
	switch v := n.(type) {
	case source.SequenceNode:
		if stopAtRecordTuple && v.Record {
			return 0, nil
		}
		if maxAllowed < 1 {
			return 0, depthError()
		}
		if v.Len() == 0 {
			return 1, nil
		}
		d, err := Depth(v.Elem(0), maxAllowed-1, stopAtText, stopAtRecordTuple)
		if err != nil {
			return 0, err
		}
		return d + 1, nil

	case source.ArrayNode:
		nd := v.Array.NDim()
		if nd > maxAllowed {
			return 0, depthError()
		}
		return nd, nil

	case source.TextNode:
		if stopAtText {
			return 0, nil
		}
		if maxAllowed < 1 {
			return 0, depthError()
		}
		return 1, nil

	case source.ScalarNode, source.UnclassifiableNode:
		return 0, nil

	default:
		panic(fmt.Sprintf("discover: unknown node %T", n))
	}
}

func depthError() error {
	return fmt.Errorf("Depth: %w", ErrDepthExceeded)
}
