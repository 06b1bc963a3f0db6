// Package substrate defines how forwarding units are scheduled.
//
// A forwarding unit receives one payload from its upstream link, applies a
// transform and sends the result downstream, forever. Substrates decide who
// runs that loop:
//   - thread: one goroutine locked to its own OS thread per unit; the host
//     OS schedules it and blocking happens in the kernel (with fd links)
//   - task:   one goroutine per unit multiplexed onto GOMAXPROCS workers;
//     units suspend only inside Send and Recv
//   - inline: no independent scheduling; Pump walks every unit once, in
//     chain order, on the caller's goroutine. Baseline with no context switch
//
// All three give the driver the same observable behavior: a payload injected
// at the entry leaves the exit after exactly one transform per unit.
package substrate
