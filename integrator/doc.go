// Package integrator advances a concentration field under the Cahn-Hilliard
// equation ∂c/∂t = M∇²(∂F/∂c) with an explicit forward-Euler step:
//
//	µ     = 2A(c(1-c)² - c²(1-c))
//	drive = µ - 2k∇²c
//	c'    = c + dt·M·∇²drive
//
// Step is pure: it never writes its input and always returns a new field.
//
// Domain policy. Forward Euler can overshoot [0,1] transiently. The policy
// is a single switch shared by every code path:
//
//   - PolicyClamp (default): out-of-range cells are set to 0 or 1; the number
//     of corrected cells is reported by StepReport and Run records.
//   - PolicyStrict: any out-of-range cell aborts the step with ErrOutOfDomain.
//
// Non-finite results (overflow of an unstable run) are ErrState under both
// policies; clamping never hides them.
//
// Stability. The scheme is only conditionally stable; dt must be small
// relative to dx⁴/(M·k). The integrator never checks or corrects dt; see
// config.StabilityLimit for an advisory bound.
//
// Run drives a whole trajectory: it emits one Record per step (step 0 is the
// initial field) to a Sink and holds only the current field.
package integrator
