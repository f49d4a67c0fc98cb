package workerpool

import "github.com/panjf2000/ants/v2"

// Pool is a bounded executor for CPU-heavy work (OCR, embedding inference)
// so it never saturates request handling or other pipeline runs.
type Pool struct {
	inner *ants.Pool
}

func New(size int) (*Pool, error) {
	if size <= 0 {
		size = 4
	}
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Pool{inner: p}, nil
}

func (p *Pool) Submit(task func()) error {
	return p.inner.Submit(task)
}

func (p *Pool) Release() {
	p.inner.Release()
}
