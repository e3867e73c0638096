// Package msfs locates a Microsoft Flight Simulator installation: the
// packages root recorded in UserCfg.opt and the vendor packages beneath it.
package msfs
