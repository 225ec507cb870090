package a

func ok() int { return 1 }

func explode() {
	panic("boom") // want "MOCK0001: call to panic"
}

func bad_name() { // want "MOCK1002: function name bad_name contains an underscore"
	_ = ok()
}

func empty() {}

func shadowed() {
	panic := func(string) {}
	panic("not the builtin")
}
