package appcontext

const (
	// EnvServer serves HTTP traffic and, when enabled, runs the daily sweep.
	EnvServer Env = iota
	// EnvCLI runs a one-off command and exits.
	EnvCLI
)

type Env int

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}
