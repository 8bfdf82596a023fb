package fcidump

import (
	"testing"

	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
	"github.com/qiskit-community/go-fermion-operators/internal/qferrors"
)

// h2.fcidump produces norb=2, nelec=2, ms2=0; heh.fcidump produces
// norb=2, nelec=3, ms2=1.
func TestParseFileH2(t *testing.T) {
	rec, err := ParseFile("../../testdata/h2.fcidump")
	if err != nil {
		t.Fatalf("ParseFile(h2.fcidump): %v", err)
	}
	if rec.Norb != 2 || rec.Nelec != 2 || rec.Ms2 != 0 {
		t.Fatalf("h2.fcidump header = {Norb:%d Nelec:%d Ms2:%d}, want {2 2 0}", rec.Norb, rec.Nelec, rec.Ms2)
	}
	if !rec.Restricted {
		t.Fatalf("h2.fcidump carries a single integral block and should be spin-restricted")
	}
	if rec.Enuc != 0.7137 {
		t.Fatalf("h2.fcidump Enuc = %v, want 0.7137", rec.Enuc)
	}
}

func TestParseFileHeH(t *testing.T) {
	rec, err := ParseFile("../../testdata/heh.fcidump")
	if err != nil {
		t.Fatalf("ParseFile(heh.fcidump): %v", err)
	}
	if rec.Norb != 2 || rec.Nelec != 3 || rec.Ms2 != 1 {
		t.Fatalf("heh.fcidump header = {Norb:%d Nelec:%d Ms2:%d}, want {2 3 1}", rec.Norb, rec.Nelec, rec.Ms2)
	}
	if rec.Restricted {
		t.Fatalf("heh.fcidump carries a second (beta-sector) block and should be spin-unrestricted")
	}
	if rec.H1eB == nil || rec.H2eBB == nil || rec.H2eAB == nil {
		t.Fatalf("unrestricted record must populate the beta and cross-spin tensors")
	}
}

func TestLiftProducesHermitianSymmetricHamiltonian(t *testing.T) {
	rec, err := ParseFile("../../testdata/h2.fcidump")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	op := rec.Lift()
	if op.Len() == 0 {
		t.Fatalf("Lift() produced an empty operator")
	}
	if !fermion.ConservesParticleNumber(op) {
		t.Fatalf("electronic Hamiltonian must conserve particle number")
	}
	if !fermion.IsHermitian(op, 1e-9) {
		t.Fatalf("a real-integral electronic Hamiltonian must be Hermitian")
	}
}

func TestParseMissingRequiredKeyIsParseError(t *testing.T) {
	cases := map[string]string{
		"NORB":  " &FCI NELEC=2,MS2=0 &END\n 1.0 1 1 0 0\n",
		"NELEC": " &FCI NORB=1,MS2=0 &END\n 1.0 1 1 0 0\n",
		"MS2":   " &FCI NORB=1,NELEC=2 &END\n 1.0 1 1 0 0\n",
	}
	for key, source := range cases {
		_, err := Parse(source)
		if err == nil {
			t.Fatalf("missing %s should fail to parse", key)
		}
		perr, ok := err.(*qferrors.Error)
		if !ok || perr.Kind != qferrors.ParseError {
			t.Fatalf("missing %s: expected qferrors.ParseError, got %v", key, err)
		}
	}
}

func TestParseOutOfRangeIndex(t *testing.T) {
	_, err := Parse(" &FCI NORB=1,NELEC=2,MS2=0 &END\n 1.0 3 3 0 0\n 0.0 0 0 0 0\n")
	if err == nil {
		t.Fatalf("an index beyond NORB should fail to parse")
	}
	perr, ok := err.(*qferrors.Error)
	if !ok || perr.Kind != qferrors.ParseError {
		t.Fatalf("expected qferrors.ParseError, got %v", err)
	}
	if perr.ByteOffset < 0 {
		t.Fatalf("parse failure should carry the record's byte offset")
	}
}

func TestParseTruncatedRecord(t *testing.T) {
	_, err := Parse(" &FCI NORB=1,NELEC=1,MS2=0 &END\n 1.0 1 1\n")
	if err == nil {
		t.Fatalf("a truncated integral record should fail to parse")
	}
}
