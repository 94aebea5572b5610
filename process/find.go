package process

import "fmt"

// FindOneByName returns the match with the lowest pid, or ErrProcessNotFound
// when nothing matches
func FindOneByName(name string) (ProcessInfo, error) {
	ps, err := FindByName(name)
	if err != nil {
		return ProcessInfo{}, err
	}
	if len(ps) == 0 {
		return ProcessInfo{}, fmt.Errorf("%w: no process named %q", ErrProcessNotFound, name)
	}
	return ps[0], nil
}
