package swiftmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// blk builds a block from name/value pairs.
func blk(pairs ...string) *Block {
	if len(pairs)%2 != 0 {
		panic("blk needs name/value pairs")
	}
	b := &Block{}
	for i := 0; i < len(pairs); i += 2 {
		b.AppendTag(pairs[i], pairs[i+1])
	}
	return b
}

func tagsOf(pairs ...string) []Tag {
	return blk(pairs...).Tags()
}

func assertTags(t *testing.T, want []Tag, got *Block) {
	t.Helper()
	if got == nil {
		t.Fatalf("got nil block, want %v", want)
	}
	if diff := cmp.Diff(want, got.Tags()); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

const mt103FIN = "{1:F01BANKBEBBAXXX0000000000}{2:I103BANKDEFFXXXXN}{3:{108:MUR123}}{4:\n" +
	":20:REF123\n" +
	":23B:CRED\n" +
	":32A:240102USD1000,50\n" +
	":50K:/12345\n" +
	"JOHN DOE\n" +
	":59:/67890\n" +
	"JANE DOE\n" +
	":71A:SHA\n" +
	"-}{5:{CHK:ABCDEF012345}}"

const mt537FIN = "{1:F01BANKBEBBAXXX0000000000}{2:I537BANKDEFFXXXXN}{4:\n" +
	":16R:GENL\n" +
	":28E:1/ONLY\n" +
	":20C::SEME//STMT1\n" +
	":23G:NEWM\n" +
	":16R:LINK\n" +
	":20C::RELA//PREV1\n" +
	":16S:LINK\n" +
	":16S:GENL\n" +
	":16R:STAT\n" +
	":25D::SETT//PEND\n" +
	":16R:REAS\n" +
	":24B::PEND//LACK\n" +
	":16S:REAS\n" +
	":16R:TRAN\n" +
	":16R:LINK\n" +
	":20C::RELA//TX1\n" +
	":16S:LINK\n" +
	":16S:TRAN\n" +
	":16S:STAT\n" +
	":16R:TRANS\n" +
	":16R:LINK\n" +
	":20C::RELA//TX2\n" +
	":16S:LINK\n" +
	":16R:TRANSDET\n" +
	":35B:ISIN US0378331005\n" +
	":16S:TRANSDET\n" +
	":16R:STAT\n" +
	":25D::SETT//PENF\n" +
	":16S:STAT\n" +
	":16S:TRANS\n" +
	"-}"
