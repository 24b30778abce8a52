// Package workload содержит синтетическую нагрузку для диагностического эндпоинта /api/sleep:
// CPU-задачу (поиск n-го простого), пул для её выполнения и генератор фейковых курсов.
package workload

// FindNthPrime возвращает n-е простое число (FindNthPrime(1) == 2).
//
// Перебор делением на все ранее найденные простые сделан намеренно тяжёлым:
// это и есть CPU-нагрузка. Для n < 1 возвращает 0.
func FindNthPrime(n int) int {
	if n < 1 {
		return 0
	}

	primes := make([]int, 1, n)
	primes[0] = 2
	for num := 3; len(primes) < n; num += 2 {
		isPrime := true
		for _, p := range primes {
			if num%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, num)
		}
	}
	return primes[n-1]
}
