package stats

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virus-evolution/samstats/pkg/sam"
)

func aggregateString(t *testing.T, input string, opts Options) (*Stats, *Groups) {
	t.Helper()
	s, g, err := Aggregate(sam.NewReader(strings.NewReader(input)), opts)
	require.NoError(t, err)
	return s, g
}

func TestAggregateSingleRecord(t *testing.T) {
	input := "@HD\tVN:1.6\n" +
		"r1\t0\tchr1\t100\t40\t10M\n"

	s, g := aggregateString(t, input, Options{})

	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Mapped)
	assert.Equal(t, 0, s.Unmapped)
	assert.Equal(t, 0, s.PartiallyMapped)
	assert.Equal(t, map[string]int{"chr1": 1}, s.ByReference)
	assert.Equal(t, map[string]int{sam.SimpleMatch: 1}, s.CigarTypes)
	assert.Equal(t, map[string]int{"[40-49]": 1}, s.MapQ)
	assert.Equal(t, 1, g.Len())
}

func TestAggregateUnmapped(t *testing.T) {
	s, _ := aggregateString(t, "r1\t4\tchr1\t100\t0\t*\n", Options{})

	assert.Equal(t, 0, s.Mapped)
	assert.Equal(t, 1, s.Unmapped)
	assert.Empty(t, s.ByReference)
	assert.Equal(t, 0, s.PartiallyMapped)
	assert.Equal(t, map[string]int{sam.NonMatch: 1}, s.CigarTypes)
	assert.Equal(t, map[string]int{"[0-9]": 1}, s.MapQ)
	assert.Equal(t, 1, s.FlagCounts["unmapped"])
}

func TestAggregateInvariants(t *testing.T) {
	input := "@HD\tVN:1.6\n" +
		"@SQ\tSN:chr1\tLN:1000\n" +
		"p1\t67\tchr1\t100\t50\t50M\t=\t200\t150\n" +
		"p1\t147\tchr1\t200\t20\t5S45M\t=\t100\t-150\n" +
		"p2\t73\tchr2\t10\t60\t50M\n" +
		"p2\t133\t*\t0\t0\t*\n" +
		"s1\t0\tchr2\t500\t255\t20M1I29M\n" +
		"t1\t0\tchr1\t1\t37\t50M\n" +
		"t1\t256\tchr2\t1\t3\t50M\n" +
		"t1\t2048\tchr3\t1\t3\t20H30M\n"

	s, g := aggregateString(t, input, Options{})

	assert.Equal(t, 8, s.Total)
	assert.Equal(t, s.Total, s.Mapped+s.Unmapped)
	assert.Equal(t, 7, s.Mapped)
	assert.Equal(t, map[string]int{"chr1": 3, "chr2": 3, "chr3": 1}, s.ByReference)
	assert.Equal(t, 4, s.PartiallyMapped)
	assert.Equal(t, 2, s.ProperlyPaired)

	sum := func(m map[string]int) (n int) {
		for _, v := range m {
			n += v
		}
		return
	}
	assert.Equal(t, s.Total, sum(s.MapQ))
	assert.Equal(t, s.Mapped, sum(s.ByReference))
	assert.Equal(t, s.Total, sum(s.CigarTypes))
	for typ := range s.CigarTypes {
		assert.Contains(t, []string{sam.SimpleMatch, sam.NonMatch}, typ)
	}

	assert.Equal(t, 4, g.Len())
	assert.Len(t, g.Get("t1"), 3)
	assert.Equal(t, 256, int(g.Get("t1")[1].Flags))

	var order []string
	g.Each(func(name string, _ []sam.Record) { order = append(order, name) })
	assert.Equal(t, []string{"p1", "p2", "s1", "t1"}, order)

	ps := AnalysePairs(g)
	assert.LessOrEqual(t, ps.Paired, s.Total/2)
	assert.Equal(t, 2, ps.Paired)
}

func TestAggregateFailsFast(t *testing.T) {
	input := "r1\t0\tchr1\t100\t40\t10M\n" +
		"r2\t0\tchr1\t100\tforty\t10M\n" +
		"r3\t0\tchr1\t100\t40\t10M\n"

	s, g, err := Aggregate(sam.NewReader(strings.NewReader(input)), Options{})
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Nil(t, g)

	var merr *sam.MalformedRecordError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 2, merr.Line)
	assert.Equal(t, "MAPQ", merr.Field)
}

func TestAggregateSkipMalformed(t *testing.T) {
	input := "r1\t0\tchr1\t100\t40\t10M\n" +
		"r2\t0\tchr1\n" +
		"r3\t0\tchr1\t100\t40\t10M\n"

	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)

	s, _ := aggregateString(t, input, Options{SkipMalformed: true, Logger: logger})

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Skipped)
	assert.Contains(t, logs.String(), "line=2")
}

func TestAggregateProgress(t *testing.T) {
	input := strings.Repeat("r\t0\tchr1\t1\t60\t5M\n", 5)

	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetLevel(logrus.DebugLevel)

	aggregateString(t, input, Options{Progress: 2, Logger: logger})

	assert.Equal(t, 2, strings.Count(logs.String(), "msg=progress"))
}

func TestQualityBin(t *testing.T) {
	tests := []struct {
		mapq int
		want string
	}{
		{0, "[0-9]"},
		{9, "[0-9]"},
		{10, "[10-19]"},
		{29, "[20-29]"},
		{60, "[60-69]"},
		{255, "[250-259]"},
		{-1, "[-10--1]"},
		{-10, "[-10--1]"},
		{-11, "[-20--11]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QualityBin(tt.mapq), "mapq %d", tt.mapq)
	}
}

func TestQualityBins(t *testing.T) {
	s := NewStats()
	for _, q := range []int{255, 3, 42, 45, 100, 21, -4} {
		s.Add(sam.Record{MapQ: q})
	}

	assert.Equal(t, []Bin{
		{"[-10--1]", 1},
		{"[0-9]", 1},
		{"[20-29]", 1},
		{"[40-49]", 2},
		{"[100-109]", 1},
		{"[250-259]", 1},
	}, s.QualityBins())
}
