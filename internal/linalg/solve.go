package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSingular indicates a singular or numerically unsolvable system.
	ErrSingular = errors.New("linalg: singular system")

	// ErrDimension indicates mismatched matrix and vector sizes.
	ErrDimension = errors.New("linalg: dimension mismatch")
)

// MaxDenseUnknowns bounds the size of the dense LU fallback used for
// systems that are not symmetric definite.
const MaxDenseUnknowns = 2500

// symTol is the relative tolerance for treating a[i][j] and a[j][i] as equal.
const symTol = 1e-12

// Method names the factorization used by Solve.
type Method string

const (
	MethodNone         Method = "none"
	MethodBandCholesky Method = "band-cholesky"
	MethodDenseLU      Method = "dense-lu"
)

type Stats struct {
	Size      int
	Fixed     int
	Unknowns  int
	Bandwidth int
	Method    Method
}

// Solve returns x with a·x = b.
//
// Rows that store only a diagonal entry are Dirichlet rows: their values
// are fixed directly and moved to the right-hand side of the remaining
// rows. The reduced system is factorized with a banded Cholesky when it is
// symmetric with a single-signed diagonal, and with dense LU otherwise.
func Solve(a *CSR, b []float64) ([]float64, Stats, error) {
	n, c := a.Dims()
	st := Stats{Size: n, Method: MethodNone}
	if n != c || len(b) != n {
		return nil, st, fmt.Errorf("%w: matrix %dx%d, rhs %d", ErrDimension, n, c, len(b))
	}

	x := make([]float64, n)
	fixed := make([]bool, n)
	reduced := make([]int, n)
	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		cols, vals := a.Row(i)
		if len(cols) == 0 {
			return nil, st, fmt.Errorf("%w: empty row %d", ErrSingular, i)
		}
		if len(cols) == 1 && cols[0] == i {
			if vals[0] == 0 {
				return nil, st, fmt.Errorf("%w: zero pivot in row %d", ErrSingular, i)
			}
			fixed[i] = true
			x[i] = b[i] / vals[0]
			reduced[i] = -1
			continue
		}
		reduced[i] = len(free)
		free = append(free, i)
	}
	st.Fixed = n - len(free)
	st.Unknowns = len(free)
	if len(free) == 0 {
		return x, st, nil
	}

	rhs := make([]float64, len(free))
	symmetric := true
	sign := 0.0
	for k, i := range free {
		rhs[k] = b[i]
		cols, vals := a.Row(i)
		for e, j := range cols {
			if fixed[j] {
				rhs[k] -= vals[e] * x[j]
				continue
			}
			if d := abs(reduced[j] - k); d > st.Bandwidth {
				st.Bandwidth = d
			}
			if j == i {
				switch {
				case vals[e] == 0:
					symmetric = false
				case sign == 0:
					sign = math.Copysign(1, vals[e])
				case math.Signbit(vals[e]) != math.Signbit(sign):
					symmetric = false
				}
				continue
			}
			if t := a.At(j, i); math.Abs(t-vals[e]) > symTol*math.Max(math.Abs(t), math.Abs(vals[e])) {
				symmetric = false
			}
		}
	}

	var sol []float64
	var err error
	if symmetric && sign != 0 {
		st.Method = MethodBandCholesky
		sol, err = bandCholesky(a, free, reduced, rhs, sign, st.Bandwidth)
		if err != nil && len(free) <= MaxDenseUnknowns {
			st.Method = MethodDenseLU
			sol, err = denseLU(a, free, reduced, rhs)
		}
	} else {
		if len(free) > MaxDenseUnknowns {
			return nil, st, fmt.Errorf("%w: %d unsymmetric unknowns exceed dense limit %d",
				ErrSingular, len(free), MaxDenseUnknowns)
		}
		st.Method = MethodDenseLU
		sol, err = denseLU(a, free, reduced, rhs)
	}
	if err != nil {
		return nil, st, err
	}

	for k, i := range free {
		x[i] = sol[k]
	}
	return x, st, nil
}

func bandCholesky(a *CSR, free, reduced []int, rhs []float64, sign float64, kd int) ([]float64, error) {
	nf := len(free)
	if kd > nf-1 {
		kd = nf - 1
	}
	band := mat.NewSymBandDense(nf, kd, nil)
	for k, i := range free {
		cols, vals := a.Row(i)
		for e, j := range cols {
			r := reduced[j]
			if r < k {
				continue
			}
			band.SetSymBand(k, r, sign*vals[e])
		}
	}

	var ch mat.BandCholesky
	if ok := ch.Factorize(band); !ok {
		return nil, fmt.Errorf("%w: matrix is not definite", ErrSingular)
	}

	b := make([]float64, nf)
	for k := range rhs {
		b[k] = sign * rhs[k]
	}
	dst := mat.NewVecDense(nf, nil)
	if err := ch.SolveVecTo(dst, mat.NewVecDense(nf, b)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return dst.RawVector().Data, nil
}

func denseLU(a *CSR, free, reduced []int, rhs []float64) ([]float64, error) {
	nf := len(free)
	m := mat.NewDense(nf, nf, nil)
	for k, i := range free {
		cols, vals := a.Row(i)
		for e, j := range cols {
			if r := reduced[j]; r >= 0 {
				m.Set(k, r, vals[e])
			}
		}
	}

	var lu mat.LU
	lu.Factorize(m)
	dst := mat.NewVecDense(nf, nil)
	if err := lu.SolveVecTo(dst, false, mat.NewVecDense(nf, append([]float64(nil), rhs...))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return dst.RawVector().Data, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
