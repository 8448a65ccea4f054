package sam

import (
	biogosam "github.com/biogo/hts/sam"
)

// IsMapped reports whether the segment itself is mapped, i.e. the 0x4 bit is clear.
func IsMapped(flags biogosam.Flags) bool {
	return flags&biogosam.Unmapped == 0
}

// IsProperPair reports whether the segment is paired (0x1) and the aligner
// considered the pair properly aligned (0x2).
func IsProperPair(flags biogosam.Flags) bool {
	return flags&biogosam.Paired != 0 && flags&biogosam.ProperPair != 0
}

// FlagBit names one bit of the SAM flag.
type FlagBit struct {
	Flag biogosam.Flags
	Name string
}

// FlagBits are the individual SAM flag bits, lowest first.
var FlagBits = []FlagBit{
	{biogosam.Paired, "paired"},
	{biogosam.ProperPair, "proper_pair"},
	{biogosam.Unmapped, "unmapped"},
	{biogosam.MateUnmapped, "mate_unmapped"},
	{biogosam.Reverse, "reverse"},
	{biogosam.MateReverse, "mate_reverse"},
	{biogosam.Read1, "read1"},
	{biogosam.Read2, "read2"},
	{biogosam.Secondary, "secondary"},
	{biogosam.QCFail, "qc_fail"},
	{biogosam.Duplicate, "duplicate"},
	{biogosam.Supplementary, "supplementary"},
}
