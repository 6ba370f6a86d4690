package payout

// KenoPayouts maps risk -> picks -> hits -> multiplier. Three tiers with
// increasing variance; a zero multiplier is a loss.
var KenoPayouts = map[string]map[int][]float64{
	"low": {
		1:  {0, 3.96},
		2:  {0, 1.00, 4.00},
		3:  {0, 1.00, 1.50, 10.00},
		4:  {0, 0, 1.30, 2.00, 20.00},
		5:  {0, 0, 1.20, 1.70, 5.00, 50.00},
		6:  {0, 0, 1.10, 1.50, 3.00, 12.00, 100.00},
		7:  {0, 0, 1.05, 1.40, 2.00, 5.00, 25.00, 200.00},
		8:  {0, 0, 1.00, 1.30, 1.80, 3.00, 10.00, 60.00, 400.00},
		9:  {0, 0, 1.10, 1.30, 1.70, 2.50, 7.50, 50.00, 250.00, 1000.00},
		10: {0, 0, 1.00, 1.20, 1.50, 2.00, 5.00, 20.00, 80.00, 400.00, 2000.00},
	},
	"medium": {
		1:  {0, 3.96},
		2:  {0, 1.50, 9.00},
		3:  {0, 0, 2.00, 25.00},
		4:  {0, 0, 1.50, 5.00, 50.00},
		5:  {0, 0, 1.00, 3.00, 12.00, 100.00},
		6:  {0, 0, 0, 2.00, 6.00, 25.00, 200.00},
		7:  {0, 0, 0, 1.50, 4.00, 12.00, 50.00, 400.00},
		8:  {0, 0, 0, 1.00, 3.00, 8.00, 30.00, 150.00, 1000.00},
		9:  {0, 0, 0, 2.00, 2.50, 5.00, 15.00, 100.00, 500.00, 1000.00},
		10: {0, 0, 0, 1.50, 2.00, 4.00, 10.00, 50.00, 250.00, 1000.00, 5000.00},
	},
	"high": {
		1:  {0, 3.96},
		2:  {0, 0, 17.00},
		3:  {0, 0, 0, 81.00},
		4:  {0, 0, 0, 5.00, 150.00},
		5:  {0, 0, 0, 3.00, 20.00, 300.00},
		6:  {0, 0, 0, 2.00, 8.00, 60.00, 700.00},
		7:  {0, 0, 0, 1.50, 5.00, 20.00, 150.00, 1000.00},
		8:  {0, 0, 0, 1.00, 3.00, 12.00, 60.00, 400.00, 2000.00},
		9:  {0, 0, 0, 0, 2.50, 8.00, 30.00, 200.00, 1000.00, 4000.00},
		10: {0, 0, 0, 0, 2.00, 5.00, 20.00, 100.00, 500.00, 2000.00, 10000.00},
	},
}
