// Package binding exposes fleets to hosts that speak in integers and
// strings rather than Go values, such as a language bridge or a scripted UI.
//
// A Registry hands out opaque Handle tokens. The host creates a fleet, drives
// it with PlaceShip and Attack, and destroys it when the game ends:
//
//	reg := binding.NewRegistry()
//	a, b := reg.Create(), reg.Create()
//	defer reg.Destroy(a)
//	defer reg.Destroy(b)
//
//	reg.PlaceShip(b, "carrier", 4, 4, 0) // 1
//	reg.Attack(a, 4, 4, b)               // "Hit!"
//
// PlaceShip returns 1 on success and -1 on any failure. Attack returns the
// outcome literal ("Miss!", "Hit!", "Enemy ship has been taken down!") or an
// error literal starting with "Error:". Errors never change either fleet.
package binding
