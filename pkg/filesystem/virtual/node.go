package virtual

import (
	"context"
)

// Node is the intersection between Directory and Leaf. These are the
// operations that can be applied to both kinds of objects.
type Node interface {
	VirtualGetAttributes(ctx context.Context, requested AttributesMask, attributes *Attributes)
}
