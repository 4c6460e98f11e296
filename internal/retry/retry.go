// Package retry implementa una política de reintentos acotada e inyectable
// sobre cenkalti/backoff: N intentos, timeout por intento y espera lineal
// (step * intento) entre ellos.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy configura los reintentos. El valor cero no reintenta.
type Policy struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	Step           time.Duration

	// Timer permite sustituir el reloj en tests. Nil usa el real.
	Timer backoff.Timer
	// Notify se invoca antes de cada espera.
	Notify func(err error, wait time.Duration)
}

// Default es la política del asesor: 3 intentos, 60s por intento, 1s lineal.
func Default() Policy {
	return Policy{MaxAttempts: 3, AttemptTimeout: 60 * time.Second, Step: time.Second}
}

// Result informa cuántos intentos se hicieron.
type Result struct {
	Attempts int
}

// Permanent marca un error que no debe reintentarse.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do ejecuta op hasta que tenga éxito, devuelva un error permanente, se
// agoten los intentos o se cancele ctx. Cada intento recibe un contexto con
// AttemptTimeout.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) (Result, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var res Result
	operation := func() error {
		res.Attempts++
		actx, cancel := p.attemptContext(ctx)
		defer cancel()
		return op(actx)
	}

	var b backoff.BackOff = &linearBackOff{step: p.Step}
	b = backoff.WithMaxRetries(b, uint64(attempts-1))
	b = backoff.WithContext(b, ctx)

	err := backoff.RetryNotifyWithTimer(operation, b, p.Notify, p.Timer)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
	}
	return res, err
}

func (p Policy) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.AttemptTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.AttemptTimeout)
}

// linearBackOff espera step, 2*step, 3*step...
type linearBackOff struct {
	step time.Duration
	n    int
}

func (l *linearBackOff) NextBackOff() time.Duration {
	l.n++
	return time.Duration(l.n) * l.step
}

func (l *linearBackOff) Reset() { l.n = 0 }
