package astisi

import "sync"

// poolOfScratch global variable is used to ease access to pool from any place of the code
var poolOfScratch = &poolScratchBuffer{
	sp: sync.Pool{
		New: func() interface{} {
			// Prepare the slice of somewhat sensible initial size to minimize calls to runtime.growslice
			return &scratchBuffer{
				s: make([]byte, 0, 1<<13),
			}
		},
	},
}

// scratchBuffer is an object containing a reusable byte slice
type scratchBuffer struct {
	s []byte
}

// poolScratchBuffer is a pool for temporary wire buffers in EncodeDescriptorsBytes()
// Don't use it anywhere else to avoid pool pollution
type poolScratchBuffer struct {
	sp sync.Pool
}

// get returns a scratchBuffer object with byte slice of a 'size' length
func (psb *poolScratchBuffer) get(size int) (buf *scratchBuffer) {
	buf, _ = psb.sp.Get().(*scratchBuffer)
	// Reset slice length or grow it to requested size
	s := uint(size)
	if uint(cap(buf.s)) >= s {
		buf.s = buf.s[:s]
		for i := range buf.s {
			buf.s[i] = 0
		}
	} else {
		psb.sp.Put(buf)
		buf = &scratchBuffer{s: make([]byte, s)}
	}
	return
}

// put returns reference to the buffer back to pool
// Don't use the buffer after a call to put
func (psb *poolScratchBuffer) put(buf *scratchBuffer) {
	psb.sp.Put(buf)
}
