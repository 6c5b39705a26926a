package utils

// Generates a sequence constructed by applying a function to all elements of a given input sequence
func Map[T any, U any](input []T, mapFunction func(T) U) []U {
	output := make([]U, len(input))

	for i := range input {
		output[i] = mapFunction(input[i])
	}

	return output
}

// Returns the items of a sequence for which the given predicate holds, in their original order
func Filter[T any](input []T, predicate func(T) bool) []T {
	output := make([]T, 0, len(input))

	for _, value := range input {
		if predicate(value) {
			output = append(output, value)
		}
	}

	return output
}

// Returns an array with all the keys of a map
func Keys[Key comparable, Value any](input map[Key]Value) []Key {
	keys := make([]Key, 0, len(input))

	for key := range input {
		keys = append(keys, key)
	}

	return keys
}
