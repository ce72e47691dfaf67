package swiftmt

import "github.com/valyala/bytebufferpool"

// finBuffers backs Message.FIN. The pool calibrates its default buffer
// size from the messages it renders.
var finBuffers bytebufferpool.Pool

func getBuffer() *bytebufferpool.ByteBuffer {
	return finBuffers.Get()
}

func putBuffer(buf *bytebufferpool.ByteBuffer) {
	finBuffers.Put(buf)
}
