package fcidump

import (
	"strconv"

	"github.com/qiskit-community/go-fermion-operators/internal/integrals"
	"github.com/qiskit-community/go-fermion-operators/internal/qferrors"
)

// Record is the fully-materialized result of parsing a FCIDUMP file.
// Restricted is true when the file carried a single integral block; the _B
// fields and H2eAB are nil in that case.
type Record struct {
	Norb, Nelec, Ms2 uint32
	Orbsym           []uint32
	Isym             uint32
	Enuc             float64

	Restricted bool

	H1eA, H1eB   []float64 // triangular, length integrals.TrilSize(Norb)
	H2eAA, H2eBB []float64 // tril-of-tril, length TrilSize(TrilSize(Norb))
	H2eAB        []float64 // dense TrilSize(Norb) x TrilSize(Norb), unrestricted only
}

// Parse reads a complete FCIDUMP document from source.
func Parse(source string) (*Record, error) {
	toks, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	header, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	switch {
	case !header.hasNorb:
		return nil, qferrors.New(qferrors.ParseError, "missing required key NORB").WithOffset(0)
	case !header.hasNelec:
		return nil, qferrors.New(qferrors.ParseError, "missing required key NELEC").WithOffset(0)
	case !header.hasMs2:
		return nil, qferrors.New(qferrors.ParseError, "missing required key MS2").WithOffset(0)
	}

	rec := &Record{
		Norb:   header.norb,
		Nelec:  header.nelec,
		Ms2:    header.ms2,
		Orbsym: header.orbsym,
		Isym:   header.isym,
	}

	blocks, enuc, err := p.parseBody(int(rec.Norb))
	if err != nil {
		return nil, err
	}
	rec.Enuc = enuc

	t1 := integrals.TrilSize(int(rec.Norb))
	t2 := integrals.TrilSize(t1)

	if len(blocks) == 0 {
		return nil, qferrors.New(qferrors.ParseError, "no integral records found").WithOffset(0)
	}

	alpha := blocks[0]
	rec.H1eA = alpha.toTriangular1(t1)
	rec.H2eAA = alpha.toTriangular2(t2)

	if len(blocks) == 1 {
		rec.Restricted = true
		return rec, nil
	}

	beta := blocks[1]
	rec.Restricted = false
	rec.H1eB = beta.toTriangular1(t1)
	rec.H2eBB = beta.toTriangular2(t2)
	rec.H2eAB = make([]float64, t1*t1)
	return rec, nil
}

// headerFields holds the decoded &FCI namelist. The has... flags record
// which of the required keys actually appeared, since every field's zero
// value is also a legal key value.
type headerFields struct {
	norb, nelec, ms2, isym uint32
	orbsym                 []uint32

	hasNorb, hasNelec, hasMs2 bool
}

// rawBlock accumulates one spin sector's records before it is folded into
// triangular storage.
type rawBlock struct {
	oneBody map[[2]int]float64
	twoBody map[[4]int]float64
}

func newRawBlock() *rawBlock {
	return &rawBlock{oneBody: map[[2]int]float64{}, twoBody: map[[4]int]float64{}}
}

func (b *rawBlock) toTriangular1(t1 int) []float64 {
	out := make([]float64, t1)
	for k, v := range b.oneBody {
		out[integrals.TrilIndex(k[0]-1, k[1]-1)] = v
	}
	return out
}

func (b *rawBlock) toTriangular2(t2 int) []float64 {
	out := make([]float64, t2)
	for k, v := range b.twoBody {
		pq := integrals.TrilIndex(k[0]-1, k[1]-1)
		rs := integrals.TrilIndex(k[2]-1, k[3]-1)
		out[integrals.TrilIndex(pq, rs)] = v
	}
	return out
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parseHeader consumes the leading &FCI ... &END (or "/") namelist.
func (p *parser) parseHeader() (*headerFields, error) {
	h := &headerFields{}
	if p.cur().typ != tokAmp {
		return nil, qferrors.New(qferrors.ParseError, "expected &FCI header").WithOffset(p.cur().offset)
	}
	p.advance() // &FCI

	for {
		switch p.cur().typ {
		case tokAmp, tokSlash:
			p.advance()
			return h, nil
		case tokComma:
			p.advance()
			continue
		case tokIdent:
			keyTok := p.advance()
			key := keyTok.text
			if p.cur().typ != tokEqual {
				return nil, qferrors.New(qferrors.ParseError, "expected '=' after key %q", key).WithOffset(p.cur().offset)
			}
			p.advance()
			values, err := p.readValueList()
			if err != nil {
				return nil, err
			}
			if err := assignHeaderKey(h, key, values); err != nil {
				if qerr, ok := err.(*qferrors.Error); ok {
					return nil, qerr.WithOffset(keyTok.offset)
				}
				return nil, err
			}
		case tokEOF:
			return nil, qferrors.New(qferrors.ParseError, "unterminated header").WithOffset(p.cur().offset)
		default:
			return nil, qferrors.New(qferrors.ParseError, "unexpected token in header").WithOffset(p.cur().offset)
		}
	}
}

// readValueList reads one or more comma-separated numeric or bare-word
// values following a key's '=', stopping before the next key or terminator.
func (p *parser) readValueList() ([]string, error) {
	var values []string
	for {
		switch p.cur().typ {
		case tokNumber, tokIdent:
			values = append(values, p.advance().text)
		default:
			return nil, qferrors.New(qferrors.ParseError, "expected value").WithOffset(p.cur().offset)
		}
		if p.cur().typ == tokComma {
			// A comma could separate list values or start the next key;
			// only consume it here if a value (not identifier=key) follows.
			if p.pos+1 < len(p.toks) && p.toks[p.pos+1].typ == tokNumber {
				p.advance()
				continue
			}
		}
		return values, nil
	}
}

func assignHeaderKey(h *headerFields, key string, values []string) error {
	switch key {
	case "NORB":
		v, err := parseUint(values, key)
		if err != nil {
			return err
		}
		h.norb = v
		h.hasNorb = true
	case "NELEC":
		v, err := parseUint(values, key)
		if err != nil {
			return err
		}
		h.nelec = v
		h.hasNelec = true
	case "MS2":
		v, err := parseUint(values, key)
		if err != nil {
			return err
		}
		h.ms2 = v
		h.hasMs2 = true
	case "ISYM":
		v, err := parseUint(values, key)
		if err != nil {
			return err
		}
		h.isym = v
	case "ORBSYM":
		for _, raw := range values {
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return qferrors.New(qferrors.ParseError, "invalid ORBSYM entry %q", raw)
			}
			h.orbsym = append(h.orbsym, uint32(v))
		}
	}
	// Unrecognized keys (e.g. UHF=.TRUE.) are ignored: this ingester
	// auto-detects spin-unrestricted input from the presence of a second
	// integral block, not from a namelist flag.
	return nil
}

func parseUint(values []string, key string) (uint32, error) {
	if len(values) != 1 {
		return 0, qferrors.New(qferrors.ParseError, "key %q expects a single value", key)
	}
	v, err := strconv.ParseUint(values[0], 10, 32)
	if err != nil {
		return 0, qferrors.New(qferrors.ParseError, "invalid value for %q: %q", key, values[0])
	}
	return uint32(v), nil
}

// parseBody reads (value, i, j, k, l) quintuples until EOF, grouping them
// into spin blocks separated by (0,0,0,0) records: every all-zero-index
// record both closes the current block and may (if it is the last one seen)
// supply the nuclear-repulsion energy. An index beyond norb is a ParseError
// carrying the record's byte offset; OutOfRange is reserved for mapping
// time.
func (p *parser) parseBody(norb int) ([]*rawBlock, float64, error) {
	var blocks []*rawBlock
	cur := newRawBlock()
	started := false
	var enuc float64

	for p.cur().typ != tokEOF {
		if p.cur().typ == tokComma {
			p.advance()
			continue
		}
		offset := p.cur().offset
		val, err := p.readFloat()
		if err != nil {
			return nil, 0, err
		}
		idx, err := p.readIndices(offset)
		if err != nil {
			return nil, 0, err
		}
		for _, v := range idx {
			if v > norb {
				return nil, 0, qferrors.New(qferrors.ParseError,
					"orbital index %d exceeds NORB=%d", v, norb).WithOffset(offset)
			}
		}

		switch {
		case idx == [4]int{0, 0, 0, 0}:
			enuc = val
			if started {
				blocks = append(blocks, cur)
				cur = newRawBlock()
				started = false
			}
		case idx[2] == 0 && idx[3] == 0 && idx[1] == 0:
			// orbital energy (i,0,0,0): ignored by the lifter.
		case idx[2] == 0 && idx[3] == 0:
			cur.oneBody[[2]int{idx[0], idx[1]}] = val
			started = true
		default:
			cur.twoBody[[4]int{idx[0], idx[1], idx[2], idx[3]}] = val
			started = true
		}
	}
	if started {
		blocks = append(blocks, cur)
	}
	return blocks, enuc, nil
}

func (p *parser) readFloat() (float64, error) {
	if p.cur().typ != tokNumber {
		return 0, qferrors.New(qferrors.ParseError, "expected numeric integral value").WithOffset(p.cur().offset)
	}
	tok := p.advance()
	return parseFloat(tok.text, tok.offset)
}

func (p *parser) readIndices(recordOffset int) ([4]int, error) {
	var out [4]int
	for i := 0; i < 4; i++ {
		if p.cur().typ == tokComma {
			p.advance()
		}
		if p.cur().typ != tokNumber {
			return out, qferrors.New(qferrors.ParseError, "truncated integral record").WithOffset(recordOffset)
		}
		tok := p.advance()
		v, err := strconv.Atoi(tok.text)
		if err != nil {
			return out, qferrors.New(qferrors.ParseError, "invalid index %q", tok.text).WithOffset(tok.offset)
		}
		out[i] = v
	}
	return out, nil
}

// tokenize runs the scanner to completion, collecting every token.
func tokenize(source string) ([]token, error) {
	s := newScanner(source)
	var toks []token
	for {
		t, err := s.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.typ == tokEOF {
			return toks, nil
		}
	}
}
