package bottles

// Shuffle permutes s in place with a Fisher-Yates shuffle driven by src.
func Shuffle[T any](src Source, s []T) error {
	for i := len(s) - 1; i >= 1; i-- {
		j, err := src.Intn(i + 1)
		if err != nil {
			return err
		}
		s[i], s[j] = s[j], s[i]
	}
	return nil
}

// pick returns a uniformly chosen element of idx.
func pick(src Source, idx []int) (int, error) {
	n, err := src.Intn(len(idx))
	if err != nil {
		return 0, err
	}
	return idx[n], nil
}
