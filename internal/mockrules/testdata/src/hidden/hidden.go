package hidden

func empty() {} // want "MOCK0002: function empty has an empty body"

func full() {
	_ = 1
}
