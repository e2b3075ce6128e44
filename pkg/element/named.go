package element

// Name starts a member declaration: element.Named("id").Like(42).
type Name string

// Named returns a member name builder.
func Named(name string) Name {
	return Name(name)
}

// Is pairs the name with an arbitrary element.
func (n Name) Is(el Element) Member {
	return Member{Name: string(n), Element: el}
}

// Like declares a member of the same JSON type as example.
func (n Name) Like(example any) Member {
	return n.Is(Like(example))
}

// Exact declares a member equal to example.
func (n Name) Exact(example any) Member {
	return n.Is(Exact(example))
}

// Regex declares a string member fully matching pattern.
func (n Name) Regex(example, pattern string) (Member, error) {
	r, err := Regex(example, pattern)
	if err != nil {
		return Member{}, err
	}
	return n.Is(r), nil
}

// MustRegex is like Regex but panics on error.
func (n Name) MustRegex(example, pattern string) Member {
	return n.Is(MustRegex(example, pattern))
}

// GUID declares a string member matching GUIDPattern.
func (n Name) GUID(example string) (Member, error) {
	return n.Regex(example, GUIDPattern)
}

// MustGUID is like GUID but panics on error.
func (n Name) MustGUID(example string) Member {
	return n.Is(MustGUID(example))
}

// With declares an object member.
func (n Name) With(members ...Member) Member {
	return n.Is(ObjectWith(members...))
}

// Of declares an array member matched element by element.
func (n Name) Of(elements ...Element) Member {
	return n.Is(ArrayOf(elements...))
}
