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

// Package clocktree models the clock distribution network of the SAM L22.
// Oscillators feed a bank of five generators and the generators feed a bank
// of 29 peripheral channels. Each peripheral channel drives one consumer slot,
// for example the EIC or one of the SERCOM cores.
//
// All nodes are owned by the Tree type and are held in an arena, indexed by
// NodeID. Each producer node (oscillators, generators and channels) keeps an
// ordered list of subscribers. A subscriber is either another node in the
// arena or an external handler registered under a consumer key. Registering a
// handler a second time under the same key replaces the earlier handler.
//
// Frequency changes are pushed. When a configuration write changes the output
// of a node, the new value is propagated depth-first to every dependent node
// and external handler before the write returns. A node only notifies its
// subscribers if its output has changed. The only time a value is pulled is
// when a node is bound to a new producer.
//
// Oscillators have a startup period. The startup is scheduled as an event on
// a future.Timeline and the output of the oscillator is zero until the event
// has run. Disabling an oscillator increases its generation count so that a
// pending startup event from an earlier enabled period has no effect.
//
// Generators and channels are referenced by their index in the bank.
// Referencing a generator or channel that does not exist is a programming
// error and causes a panic. Reserved register encodings are never an error:
// an unknown clock source produces no output, a division factor of zero is
// treated as one and writes to a locked channel are dropped.
package clocktree
