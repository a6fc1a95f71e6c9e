/*
Package schedule computes a static execution schedule for a tiled
convolutional network running on a grid of parallel compute lanes.

Every layer's output feature map is cut into fixed-size tiles. A tile can
be computed once the tile to its left in the same row is done, once the
tiles of the previous layer covering its receptive field are done, and,
at the start of a row, once the previous row has finished (unless
duplicated lanes already give that row its own progress). These rules
form a DAG over TileID values; the schedule level of a tile is the
longest dependency chain ending at it.

Basic usage:

	calc, err := schedule.New(net, schedule.WithLogger(schedule.NewDefaultLogger()))
	res, err := calc.Result()
	fmt.Println(res.MaxLevel, res.TotalCycles)
*/
package schedule
