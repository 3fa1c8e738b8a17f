// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities leveraging generics.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
//
// The result is never nil, so an empty input still encodes as a JSON array.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// FlatMap maps every element to a slice and concatenates the results in order.
func FlatMap[T any, U any](input []T, expand func(T) ([]U, error)) ([]U, error) {
	result := make([]U, 0, len(input))
	for _, v := range input {
		part, err := expand(v)
		if err != nil {
			return nil, err
		}
		result = append(result, part...)
	}

	return result, nil
}

// Pointers returns a pointer to every element of input, in order.
//
// The pointers alias input's backing array. The result is never nil.
func Pointers[T any](input []T) []*T {
	result := make([]*T, len(input))
	for i := range input {
		result[i] = &input[i]
	}

	return result
}
