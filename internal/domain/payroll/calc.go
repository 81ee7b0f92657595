package payroll

import "math"

// Net derives the net salary from its components, rounded to cents.
func Net(baseSalary, bonus, deduction float64) float64 {
	return round2(baseSalary + bonus - deduction)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
