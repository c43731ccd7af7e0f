package fastsqrt

// Published or previously found coefficient triples.
var (
	// Lomont is Chris Lomont's improved constant with the Quake Newton step.
	Lomont = Coeffs{C1: 0x5f375a86, C2: 0.5, C3: 3}
	// Kadlec is Jan Kadlec's jointly optimized triple.
	Kadlec = Coeffs{C1: 0x5f1ffff9, C2: 0.703952253, C3: 2.38924456}
	// BestMax is the lowest max relative error triple found by an earlier
	// run of this search.
	BestMax = Coeffs{C1: 0x5f5e555c, C2: 0.255280614, C3: 4.698304653}
	// BestRMS is the lowest RMS relative error triple found by an earlier
	// run of this search.
	BestRMS = Coeffs{C1: 0x5f1abf31, C2: 0.759093463, C3: 2.271862507}
)
