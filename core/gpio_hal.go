package core

// GPIOPin is a mask of port 0 pins, bit n for PIO0_n
type GPIOPin uint32

// GPIODriver is the abstract pin interface the board application uses.
// Each call acts on the masked pins only and leaves the others alone, so
// the main loop and interrupt handlers may call it concurrently.
type GPIODriver interface {
	// SetPins drives the pins high
	SetPins(mask GPIOPin)

	// ClearPins drives the pins low
	ClearPins(mask GPIOPin)

	// TogglePins inverts the pins
	TogglePins(mask GPIOPin)

	// ReadPins returns the level of every pin
	ReadPins() GPIOPin
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
