package vtparse

// maxParams and maxSubParams bound the scratch space the parser retains
// while accumulating a CSI or DCS parameter list. Further values are
// silently dropped rather than grown without bound.
const (
	maxParams    = 16
	maxSubParams = 8
)

// Params holds the parameter list of a CSI or DCS sequence: up to
// maxParams primary parameters, each with up to maxSubParams
// sub-parameters (introduced by ':'). A missing or empty parameter
// position carries the "default" sentinel (represented as value 0 with
// isDefault true) rather than a concrete number; callers decide what the
// default means for their dispatch.
type Params struct {
	// groups[i] is the i-th primary parameter followed by its sub-parameters.
	groups [maxParams][maxSubParams + 1]uint16
	// isDefault[i][j] marks a position that had no digits typed (empty param).
	isDefault [maxParams][maxSubParams + 1]bool
	// subLen[i] is the number of sub-parameters recorded for primary i (0 = none).
	subLen [maxParams]int
	// numGroups is how many primary parameters were started.
	numGroups int

	curGroup  int
	curSub    int
	sawDigits bool
}

// reset clears all accumulated state, called on CSI/DCS entry.
func (p *Params) reset() {
	*p = Params{}
	p.isDefault[0][0] = true
}

// digit folds a decimal digit into the current parameter position,
// saturating at uint16 max on overflow.
func (p *Params) digit(d byte) {
	if p.curGroup >= maxParams || p.curSub > maxSubParams {
		return
	}
	p.sawDigits = true
	p.isDefault[p.curGroup][p.curSub] = false
	v := uint32(p.groups[p.curGroup][p.curSub])*10 + uint32(d-'0')
	if v > 0xFFFF {
		v = 0xFFFF
	}
	p.groups[p.curGroup][p.curSub] = uint16(v)
}

// semicolon starts a new primary parameter.
func (p *Params) semicolon() {
	if p.numGroups == 0 {
		p.numGroups = 1
	}
	if p.curGroup+1 >= maxParams {
		p.curGroup = maxParams
		return
	}
	p.curGroup++
	p.curSub = 0
	p.numGroups = p.curGroup + 1
	p.sawDigits = false
	p.isDefault[p.curGroup][0] = true
}

// colon starts a new sub-parameter of the current primary.
func (p *Params) colon() {
	if p.numGroups == 0 {
		p.numGroups = 1
	}
	if p.curGroup >= maxParams {
		return
	}
	if p.curSub+1 >= maxSubParams+1 {
		p.curSub = maxSubParams + 1
		return
	}
	p.curSub++
	if p.subLen[p.curGroup] < p.curSub {
		p.subLen[p.curGroup] = p.curSub
	}
	p.sawDigits = false
	p.isDefault[p.curGroup][p.curSub] = true
}

// finish is called when the CSI/DCS sequence closes; it records the
// final group if any digit or separator was seen.
func (p *Params) finish() {
	if p.numGroups == 0 && (p.sawDigits || p.curGroup > 0) {
		p.numGroups = 1
	}
}

// Len returns the number of primary parameters present (0 if the
// sequence carried no parameters at all).
func (p *Params) Len() int {
	return p.numGroups
}

// Param returns the value of primary parameter i, or def if that
// position was empty/default or out of range.
func (p *Params) Param(i int, def uint16) uint16 {
	if i < 0 || i >= p.numGroups || i >= maxParams {
		return def
	}
	if p.isDefault[i][0] {
		return def
	}
	return p.groups[i][0]
}

// SubParams returns the sub-parameter values following primary
// parameter i (not including the primary itself), using def for any
// empty position.
func (p *Params) SubParams(i int, def uint16) []uint16 {
	if i < 0 || i >= p.numGroups || i >= maxParams {
		return nil
	}
	n := p.subLen[i]
	if n == 0 {
		return nil
	}
	out := make([]uint16, n)
	for j := 0; j < n; j++ {
		if p.isDefault[i][j+1] {
			out[j] = def
		} else {
			out[j] = p.groups[i][j+1]
		}
	}
	return out
}

// Iter returns every primary parameter as a group: group[0] is the
// primary value, group[1:] its sub-parameters. Mirrors the shape used
// by govte's Params.Iter(), so dispatch code reads like SGR/CSI
// handling anywhere else in the VT ecosystem.
func (p *Params) Iter() [][]uint16 {
	if p.numGroups == 0 {
		return nil
	}
	out := make([][]uint16, p.numGroups)
	for i := 0; i < p.numGroups; i++ {
		n := p.subLen[i]
		group := make([]uint16, n+1)
		if p.isDefault[i][0] {
			group[0] = 0
		} else {
			group[0] = p.groups[i][0]
		}
		for j := 0; j < n; j++ {
			if p.isDefault[i][j+1] {
				group[j+1] = 0
			} else {
				group[j+1] = p.groups[i][j+1]
			}
		}
		out[i] = group
	}
	return out
}

// IsDefault reports whether primary parameter i was left empty
// (e.g. the "" in "CSI ; 5 H").
func (p *Params) IsDefault(i int) bool {
	if i < 0 || i >= p.numGroups || i >= maxParams {
		return true
	}
	return p.isDefault[i][0]
}
