package order

import (
	"errors"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/pkg/guard"
)

// ErrPackageIsNotConstructed is returned when a Package was not created
// through the NewPackage constructor.
var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

// Package is an immutable value object describing the physical parcel an
// order moves through a locker. Its size class determines which compartments
// can hold it; the match is always exact.
type Package struct {
	id   kernel.UUID
	size kernel.SizeClass

	guard guard.ConstructorGuard
}

// NewPackage creates a Package with the given identifier and size class.
func NewPackage(id kernel.UUID, size kernel.SizeClass) (Package, error) {
	p := Package{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setSize(size)); err != nil {
		return Package{}, err
	}

	return p, nil
}

// ID returns the package's unique identifier.
func (p Package) ID() kernel.UUID {
	return p.id
}

// Size returns the package's size class.
func (p Package) Size() kernel.SizeClass {
	return p.size
}

// Validate ensures the Package was created through the constructor.
func (p Package) Validate() error {
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

func (p *Package) setSize(size kernel.SizeClass) error {
	if err := size.Validate(); err != nil {
		return err
	}

	p.size = size
	return nil
}
