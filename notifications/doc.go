// This file is part of Samclk.
//
// Samclk is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Samclk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Samclk.  If not, see <https://www.gnu.org/licenses/>.

// Package notifications allow communication from the clock hardware directly
// to whichever part of the program is driving it. For example, the
// oscillators use a notification to indicate that the startup period has
// elapsed and that the oscillator output is now valid.
//
// Notifications are sometimes passed onto the terminal to indicate to the
// user the event that has happened. For some notifications however, it is
// appropriate for the receiver to deal with the notification invisibly.
package notifications
