package beautify

import (
	"io"
	"sync"
)

const maxPartsCap = 4 * 1024

var parserPool = sync.Pool{
	New: func() any {
		return &parser{}
	},
}

var docReaderPool = sync.Pool{
	New: func() any {
		return &docReader{}
	},
}

var partsPool = sync.Pool{
	New: func() any {
		parts := make([]string, 0, 16)
		return &parts
	},
}

func acquireParser(r io.Reader) *parser {
	p := parserPool.Get().(*parser)
	p.scanner.reset(r)
	return p
}

func releaseParser(p *parser) {
	if p == nil {
		return
	}
	p.scanner.reset(nil)
	if cap(p.scratch) > maxScratchCap {
		p.scratch = nil
	}
	if cap(p.decodedBuf) > maxScratchCap {
		p.decodedBuf = nil
	}
	p.scratch = p.scratch[:0]
	p.decodedBuf = p.decodedBuf[:0]
	parserPool.Put(p)
}

func acquireDocReader(r io.Reader) *docReader {
	d := docReaderPool.Get().(*docReader)
	d.scanner.reset(r)
	d.next()
	d.err = nil
	return d
}

func releaseDocReader(d *docReader) {
	if d == nil {
		return
	}
	d.scanner.reset(nil)
	d.err = nil
	docReaderPool.Put(d)
}

func acquireParts() *[]string {
	return partsPool.Get().(*[]string)
}

func releaseParts(p *[]string) {
	if p == nil {
		return
	}
	if cap(*p) > maxPartsCap {
		return
	}
	clear(*p)
	*p = (*p)[:0]
	partsPool.Put(p)
}
